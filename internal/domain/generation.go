package domain

// Insights are the prospect insights attached to a generated sequence.
type Insights struct {
	KeyChallenges         []string `json:"keyChallenges"`
	PersonalizationAngles []string `json:"personalizationAngles"`
	DecisionMakingFactors []string `json:"decisionMakingFactors"`
}

// GeneratedMessage is one message of a sequence. SequenceNumber is 1-based.
type GeneratedMessage struct {
	SequenceNumber  int     `json:"sequenceNumber"`
	Purpose         string  `json:"purpose"`
	Text            string  `json:"message"`
	ConfidenceScore float64 `json:"confidenceScore"`
	Reasoning       string  `json:"reasoning"`
}

// GenerationData is the structured payload of a successful generation.
type GenerationData struct {
	ThinkingProcess string             `json:"thinkingProcess"`
	Insights        Insights           `json:"prospectInsights"`
	Messages        []GeneratedMessage `json:"messages"`
}

type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
}

type Cost struct {
	TotalCost float64 `json:"totalCost"`
}

// GenerationResult is the single result shape of the engine. When Success is
// false only Error is set.
type GenerationResult struct {
	Success bool            `json:"success"`
	Data    *GenerationData `json:"data,omitempty"`
	Usage   *Usage          `json:"usage,omitempty"`
	Cost    *Cost           `json:"cost,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Failed builds a failure result.
func Failed(msg string) GenerationResult {
	return GenerationResult{Success: false, Error: msg}
}
