package engine

import (
	"fmt"
	"math"
	"strings"

	"outreach-agent/internal/domain"
)

// replacement is one literal substitution applied to every occurrence.
type replacement struct {
	old, new string
}

// Rewrite passes run in slice order; the order is observable in output.
var (
	formalRewrites = []replacement{
		{"Hey", "Hello"},
		{"!", "."},
		{"Love what", "I appreciate what"},
	}
	casualRewrites = []replacement{
		{"Hello", "Hey"},
		{"noticed", "saw"},
		{"Worth exploring", "Worth a chat"},
	}
)

// Personalizer renders templates into concrete messages.
type Personalizer struct {
	random RandomSource
}

// NewPersonalizer returns a Personalizer using r for confidence jitter, or
// the process-wide source when r is nil.
func NewPersonalizer(r RandomSource) *Personalizer {
	if r == nil {
		r = globalRandom{}
	}
	return &Personalizer{random: r}
}

// Personalized is a rendered template before it is numbered.
type Personalized struct {
	Text            string
	ConfidenceScore float64
	Reasoning       string
}

// Personalize substitutes placeholders, applies the tone rewrite for strong
// formality signals, and scores the result.
func (p *Personalizer) Personalize(tpl MessageTemplate, profile domain.ProspectProfile, tov domain.TovConfig) Personalized {
	text := applyReplacements(tpl.Text, placeholders(profile))

	switch {
	case tov.Formality > 0.7:
		text = applyReplacements(text, formalRewrites)
	case tov.Formality < 0.4:
		text = applyReplacements(text, casualRewrites)
	}

	return Personalized{
		Text:            text,
		ConfidenceScore: p.confidence(tpl.BaseConfidence, tov.Directness),
		Reasoning:       reasoning(profile, tov),
	}
}

func (p *Personalizer) confidence(base, directness float64) float64 {
	score := base + directness*0.1 - p.random.Float64()*0.1
	return math.Round(score*100) / 100
}

func placeholders(profile domain.ProspectProfile) []replacement {
	return []replacement{
		{"{name}", profile.Name},
		{"{company}", orDefault(profile.Company, "your company")},
		{"{industry}", orDefault(profile.Industry, "your industry")},
		{"{role}", ExtractRole(profile.Headline)},
	}
}

func applyReplacements(s string, reps []replacement) string {
	for _, r := range reps {
		s = strings.ReplaceAll(s, r.old, r.new)
	}
	return s
}

func reasoning(profile domain.ProspectProfile, tov domain.TovConfig) string {
	return fmt.Sprintf(
		"Personalized for %s level %s professional with %s tone and %s approach.",
		profile.Seniority(),
		orDefault(profile.Industry, "Unknown"),
		formalityLabel(tov.Formality),
		warmthLabel(tov.Warmth),
	)
}
