package domain

// ChatMessage is the provider-agnostic chat message shape used by the engine
// and LLM integrations.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is a single chat completion call.
type CompletionRequest struct {
	Model       string
	Messages    []ChatMessage
	Temperature float64
	MaxTokens   int
}

// Completion is the provider reply reduced to what the engine consumes.
type Completion struct {
	Content string
	Usage   Usage
}
