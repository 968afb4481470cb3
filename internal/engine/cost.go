package engine

import "outreach-agent/internal/domain"

const (
	inputCostPer1K  = 0.0015
	outputCostPer1K = 0.002

	mockPromptTokens     = 450
	mockCompletionTokens = 280
	mockTotalCost        = 0.00089
)

// costOf prices token usage with a linear per-1000-token model.
func costOf(u domain.Usage) domain.Cost {
	input := float64(u.PromptTokens) / 1000 * inputCostPer1K
	output := float64(u.CompletionTokens) / 1000 * outputCostPer1K
	return domain.Cost{TotalCost: input + output}
}
