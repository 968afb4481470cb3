package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"outreach-agent/internal/domain"
	"outreach-agent/internal/engine"
	"outreach-agent/internal/metrics"
)

type Scraper interface {
	Scrape(ctx context.Context, url string) (domain.ScrapedProfile, error)
}

type Generator interface {
	Mode() engine.Mode
	Generate(ctx context.Context, profile domain.ProspectProfile, tov domain.TovConfig, companyContext string, sequenceLength int) domain.GenerationResult
}

type SequenceStore interface {
	UpsertProspect(ctx context.Context, scraped domain.ScrapedProfile, linkedinURL string) (domain.Prospect, error)
	CreateTovConfig(ctx context.Context, tov domain.TovConfig) (string, error)
	CreateGeneration(ctx context.Context, rec domain.GenerationRecord) (string, error)
	CreateSequence(ctx context.Context, seq domain.MessageSequence) (string, error)
	GetSequence(ctx context.Context, id string) (domain.SequenceDetail, bool, error)
}

type SequenceService struct {
	scraper   Scraper
	generator Generator
	store     SequenceStore
	model     string
	logger    *zap.Logger
}

type GenerateInput struct {
	ProspectURL    string
	Tov            domain.TovConfig
	CompanyContext string
	SequenceLength int
}

type ProspectAnalysis struct {
	Name           string           `json:"name"`
	Company        string           `json:"company,omitempty"`
	Industry       string           `json:"industry,omitempty"`
	SeniorityLevel domain.Seniority `json:"seniorityLevel"`
	Headline       string           `json:"headline,omitempty"`
}

type AIMetadata struct {
	TokensUsed    *domain.Usage `json:"tokensUsed,omitempty"`
	EstimatedCost float64       `json:"estimatedCost"`
	Model         string        `json:"model"`
}

type GenerateOutput struct {
	SequenceID       string                    `json:"sequenceId"`
	ProspectAnalysis ProspectAnalysis          `json:"prospectAnalysis"`
	ThinkingProcess  string                    `json:"thinkingProcess"`
	ProspectInsights domain.Insights           `json:"prospectInsights"`
	Messages         []domain.GeneratedMessage `json:"messages"`
	AIMetadata       AIMetadata                `json:"aiMetadata"`
}

func NewSequenceService(scraper Scraper, generator Generator, store SequenceStore, model string, logger *zap.Logger) (*SequenceService, error) {
	if scraper == nil {
		return nil, errors.New("usecase: scraper must not be nil")
	}
	if generator == nil {
		return nil, errors.New("usecase: generator must not be nil")
	}
	if store == nil {
		return nil, errors.New("usecase: sequence store must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SequenceService{
		scraper:   scraper,
		generator: generator,
		store:     store,
		model:     strings.TrimSpace(model),
		logger:    logger,
	}, nil
}

// Generate runs the whole workflow for one prospect. The generation record is
// persisted even when the engine fails, so every call leaves an audit row.
func (s *SequenceService) Generate(ctx context.Context, in GenerateInput) (GenerateOutput, error) {
	url := strings.TrimSpace(in.ProspectURL)
	if url == "" {
		return GenerateOutput{}, newError(ErrorInvalidInput, "empty_prospect_url", nil)
	}
	length := in.SequenceLength
	if length <= 0 {
		length = engine.DefaultSequenceLength
	}

	scraped, err := s.scraper.Scrape(ctx, url)
	if err != nil {
		return GenerateOutput{}, newError(ErrorUpstream, "profile_scrape_error", err)
	}

	prospect, err := s.store.UpsertProspect(ctx, scraped, url)
	if err != nil {
		return GenerateOutput{}, newError(ErrorInternal, "dynamodb_prospect_error", err)
	}

	tovID, err := s.store.CreateTovConfig(ctx, in.Tov)
	if err != nil {
		return GenerateOutput{}, newError(ErrorInternal, "dynamodb_tov_error", err)
	}

	res := s.generator.Generate(ctx, scraped.Profile, in.Tov, in.CompanyContext, length)
	s.observe(res)

	genID, err := s.store.CreateGeneration(ctx, s.generationRecord(res))
	if err != nil {
		return GenerateOutput{}, newError(ErrorInternal, "dynamodb_generation_error", err)
	}

	if !res.Success || res.Data == nil {
		e := newError(ErrorUpstream, "generation_failed", errors.New(res.Error))
		e.Message = "AI generation failed: " + res.Error
		return GenerateOutput{}, e
	}

	seqID, err := s.store.CreateSequence(ctx, domain.MessageSequence{
		ProspectID:       prospect.ID,
		ProspectURL:      url,
		TovConfigID:      tovID,
		AIGenerationID:   genID,
		CompanyContext:   in.CompanyContext,
		Messages:         res.Data.Messages,
		ProspectInsights: res.Data.Insights,
	})
	if err != nil {
		return GenerateOutput{}, newError(ErrorInternal, "dynamodb_sequence_error", err)
	}

	s.logger.Info("sequence stored",
		zap.String("sequenceId", seqID),
		zap.String("prospectId", prospect.ID),
		zap.Int("messages", len(res.Data.Messages)),
	)

	out := GenerateOutput{
		SequenceID: seqID,
		ProspectAnalysis: ProspectAnalysis{
			Name:           scraped.Profile.Name,
			Company:        scraped.Profile.Company,
			Industry:       scraped.Profile.Industry,
			SeniorityLevel: scraped.Profile.Seniority(),
			Headline:       scraped.Profile.Headline,
		},
		ThinkingProcess:  res.Data.ThinkingProcess,
		ProspectInsights: res.Data.Insights,
		Messages:         res.Data.Messages,
		AIMetadata: AIMetadata{
			TokensUsed: res.Usage,
			Model:      s.model,
		},
	}
	if res.Cost != nil {
		out.AIMetadata.EstimatedCost = res.Cost.TotalCost
	}
	return out, nil
}

// Get returns a stored sequence with its related records.
func (s *SequenceService) Get(ctx context.Context, id string) (domain.SequenceDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.SequenceDetail{}, newError(ErrorInvalidInput, "empty_sequence_id", nil)
	}
	detail, found, err := s.store.GetSequence(ctx, id)
	if err != nil {
		return domain.SequenceDetail{}, newError(ErrorInternal, "dynamodb_read_error", err)
	}
	if !found {
		e := newError(ErrorNotFound, "sequence_not_found", nil)
		e.Message = "Sequence not found"
		return domain.SequenceDetail{}, e
	}
	return detail, nil
}

func (s *SequenceService) generationRecord(res domain.GenerationResult) domain.GenerationRecord {
	rec := domain.GenerationRecord{
		ModelUsed:    s.model,
		Success:      res.Success,
		ErrorMessage: res.Error,
	}
	if res.Usage != nil {
		rec.PromptTokens = res.Usage.PromptTokens
		rec.CompletionTokens = res.Usage.CompletionTokens
	}
	if res.Cost != nil {
		rec.TotalCost = res.Cost.TotalCost
	}
	if res.Data != nil {
		rec.ThinkingProcess = res.Data.ThinkingProcess
	}
	raw, err := json.Marshal(res)
	if err != nil {
		s.logger.Warn("encode raw generation result", zap.Error(err))
	} else {
		rec.RawResponse = string(raw)
	}
	return rec
}

func (s *SequenceService) observe(res domain.GenerationResult) {
	var prompt, completion int
	var cost float64
	if res.Usage != nil {
		prompt, completion = res.Usage.PromptTokens, res.Usage.CompletionTokens
	}
	if res.Cost != nil {
		cost = res.Cost.TotalCost
	}
	metrics.ObserveGeneration(string(s.generator.Mode()), res.Success, prompt, completion, cost)
}
