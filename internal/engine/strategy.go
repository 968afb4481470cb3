package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"outreach-agent/internal/domain"
)

// Mode names the execution path a Strategy implements.
type Mode string

const (
	ModeMock Mode = "mock"
	ModeLive Mode = "live"
)

// Request is one generation call.
type Request struct {
	Profile        domain.ProspectProfile
	Tov            domain.TovConfig
	CompanyContext string
	SequenceLength int
}

// Strategy produces a GenerationResult for a Request. Implementations never
// return provider, transport or parse failures as Go errors; those are
// reported through GenerationResult.Success and Error.
type Strategy interface {
	Mode() Mode
	Generate(ctx context.Context, req Request) domain.GenerationResult
}

// CompletionClient is the completion-service collaborator. The credential is
// owned by the client.
type CompletionClient interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (domain.Completion, error)
}

// Settings are the completion parameters used on the live path.
type Settings struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

func (s Settings) validate() error {
	if strings.TrimSpace(s.Model) == "" {
		return errors.New("engine: model must not be empty")
	}
	if s.MaxTokens <= 0 {
		return errors.New("engine: max tokens must be positive")
	}
	return nil
}

// NewStrategy selects the execution path once: a non-nil client (present
// only when a credential is configured) selects the live path, nil selects
// the mock path.
func NewStrategy(client CompletionClient, settings Settings, random RandomSource) (Strategy, error) {
	if client == nil {
		return NewMockStrategy(random), nil
	}
	return NewHTTPStrategy(client, settings)
}

// MockStrategy builds a sequence from the template library without calling
// any provider.
type MockStrategy struct {
	templates    TemplateLibrary
	personalizer *Personalizer
}

func NewMockStrategy(random RandomSource) *MockStrategy {
	return &MockStrategy{
		templates:    DefaultTemplates,
		personalizer: NewPersonalizer(random),
	}
}

func (*MockStrategy) Mode() Mode { return ModeMock }

func (m *MockStrategy) Generate(_ context.Context, req Request) domain.GenerationResult {
	set := m.templates.Lookup(req.Profile.Seniority())

	messages := make([]domain.GeneratedMessage, 0, req.SequenceLength)
	for i := 1; i <= req.SequenceLength; i++ {
		tpl := set.Template(i)
		p := m.personalizer.Personalize(tpl, req.Profile, req.Tov)
		messages = append(messages, domain.GeneratedMessage{
			SequenceNumber:  i,
			Purpose:         tpl.Purpose,
			Text:            p.Text,
			ConfidenceScore: p.ConfidenceScore,
			Reasoning:       p.Reasoning,
		})
	}

	return domain.GenerationResult{
		Success: true,
		Data: &domain.GenerationData{
			ThinkingProcess: thinkingProcess(req.Profile, req.Tov, req.CompanyContext),
			Insights: domain.Insights{
				KeyChallenges:         slices.Clone(set.Insights.KeyChallenges),
				PersonalizationAngles: slices.Clone(set.Insights.PersonalizationAngles),
				DecisionMakingFactors: slices.Clone(set.Insights.DecisionMakingFactors),
			},
			Messages: messages,
		},
		Usage: &domain.Usage{PromptTokens: mockPromptTokens, CompletionTokens: mockCompletionTokens},
		Cost:  &domain.Cost{TotalCost: mockTotalCost},
	}
}

func thinkingProcess(p domain.ProspectProfile, tov domain.TovConfig, companyContext string) string {
	tone := "approachable"
	if tov.Formality > 0.7 {
		tone = "formal"
	}
	pacing := "gradual"
	if tov.Directness > 0.7 {
		pacing = "direct"
	}
	focus := "business outcomes"
	if strings.Contains(companyContext, "SaaS") {
		focus = "software solutions"
	}
	return fmt.Sprintf("Analyzing %s at %s: This is a %s-level professional in %s. ", p.Name, orDefault(p.Company, "Unknown"), p.Seniority(), orDefault(p.Industry, "Unknown")) +
		fmt.Sprintf("Based on TOV config (formality: %s, warmth: %s, directness: %s), ", formatNumber(tov.Formality), formatNumber(tov.Warmth), formatNumber(tov.Directness)) +
		fmt.Sprintf("I'll use a %s tone with %s messaging. ", tone, pacing) +
		fmt.Sprintf("Company context suggests focus on %s.", focus)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// providerMessager is implemented by provider errors that carry a
// human-readable message from the upstream payload.
type providerMessager interface {
	ProviderMessage() string
}

// HTTPStrategy calls the completion service once per request, without retry.
type HTTPStrategy struct {
	client   CompletionClient
	settings Settings
}

func NewHTTPStrategy(client CompletionClient, settings Settings) (*HTTPStrategy, error) {
	if client == nil {
		return nil, errors.New("engine: completion client must not be nil")
	}
	if err := settings.validate(); err != nil {
		return nil, err
	}
	return &HTTPStrategy{client: client, settings: settings}, nil
}

func (*HTTPStrategy) Mode() Mode { return ModeLive }

func (h *HTTPStrategy) Generate(ctx context.Context, req Request) domain.GenerationResult {
	prompt := ComposePrompt(req.Profile, req.Tov, req.CompanyContext, req.SequenceLength)

	completion, err := h.client.Complete(ctx, domain.CompletionRequest{
		Model:       h.settings.Model,
		Messages:    promptMessages(prompt),
		Temperature: h.settings.Temperature,
		MaxTokens:   h.settings.MaxTokens,
	})
	if err != nil {
		return domain.Failed(providerMessage(err))
	}

	data, err := parseGeneration(completion.Content, req.SequenceLength)
	if err != nil {
		return domain.Failed(ErrInvalidResponse)
	}

	usage := completion.Usage
	cost := costOf(usage)
	return domain.GenerationResult{
		Success: true,
		Data:    &data,
		Usage:   &usage,
		Cost:    &cost,
	}
}

func providerMessage(err error) string {
	var pm providerMessager
	if errors.As(err, &pm) {
		if msg := strings.TrimSpace(pm.ProviderMessage()); msg != "" {
			return msg
		}
	}
	return err.Error()
}
