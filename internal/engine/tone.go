package engine

import (
	"strings"

	"outreach-agent/internal/domain"
)

// level is a three-way bucket of a tone axis.
type level int

const (
	levelLow level = iota
	levelMid
	levelHigh
)

// bucket applies the shared thresholds: > 0.7 is high, > 0.4 is mid.
func bucket(v float64) level {
	switch {
	case v > 0.7:
		return levelHigh
	case v > 0.4:
		return levelMid
	default:
		return levelLow
	}
}

// formalityLabel and warmthLabel feed the per-message reasoning string. The
// low bucket is strictly below 0.4, so exactly 0.4 lands in the middle label.
func formalityLabel(v float64) string {
	switch {
	case bucket(v) == levelHigh:
		return "formal"
	case v < 0.4:
		return "casual"
	default:
		return "balanced"
	}
}

func warmthLabel(v float64) string {
	switch {
	case bucket(v) == levelHigh:
		return "warm"
	case v < 0.4:
		return "direct"
	default:
		return "professional"
	}
}

var (
	formalityInstructions = map[level]string{
		levelHigh: "Use formal, professional language with proper titles and respectful tone",
		levelMid:  "Use professional but approachable language",
		levelLow:  "Use casual, friendly language that feels conversational",
	}
	warmthInstructions = map[level]string{
		levelHigh: "Be genuinely warm and enthusiastic, show personal interest",
		levelMid:  "Be friendly and positive while maintaining professionalism",
		levelLow:  "Be direct and business-focused with minimal small talk",
	}
	directnessInstructions = map[level]string{
		levelHigh: "Get straight to the point, be clear about your ask",
		levelMid:  "Balance relationship building with clear business purpose",
		levelLow:  "Focus heavily on relationship building before making any asks",
	}
)

const (
	technicalInstruction  = "Use industry-specific terminology and demonstrate technical understanding"
	accessibleInstruction = "Keep language accessible and avoid technical jargon"
	urgencyInstruction    = "Create appropriate urgency around timing and opportunities"
	patientInstruction    = "Take a patient, long-term relationship approach"
)

// CompileToneInstructions turns a TovConfig into five instruction fragments
// joined by ". ", one per axis, in the order formality, warmth, directness,
// technical depth, urgency.
func CompileToneInstructions(tov domain.TovConfig) string {
	fragments := []string{
		formalityInstructions[bucket(tov.Formality)],
		warmthInstructions[bucket(tov.Warmth)],
		directnessInstructions[bucket(tov.Directness)],
	}

	if tov.TechnicalDepthOrDefault() > 0.6 {
		fragments = append(fragments, technicalInstruction)
	} else {
		fragments = append(fragments, accessibleInstruction)
	}

	if tov.UrgencyOrDefault() > 0.6 {
		fragments = append(fragments, urgencyInstruction)
	} else {
		fragments = append(fragments, patientInstruction)
	}

	return strings.Join(fragments, ". ")
}
