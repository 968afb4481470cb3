package domain

// GenerationRecord is the persisted audit row of one engine call.
type GenerationRecord struct {
	ID               string  `json:"id"`
	ModelUsed        string  `json:"modelUsed"`
	PromptTokens     int     `json:"promptTokens"`
	CompletionTokens int     `json:"completionTokens"`
	TotalCost        float64 `json:"totalCost"`
	ThinkingProcess  string  `json:"thinkingProcess"`
	RawResponse      string  `json:"rawResponse"`
	Success          bool    `json:"success"`
	ErrorMessage     string  `json:"errorMessage,omitempty"`
	CreatedAt        string  `json:"createdAt"`
}

// StoredTovConfig is a persisted TovConfig.
type StoredTovConfig struct {
	ID        string    `json:"id"`
	Config    TovConfig `json:"config"`
	CreatedAt string    `json:"createdAt"`
}

// MessageSequence links a prospect, a TOV config and a generation record to
// the messages that were produced.
type MessageSequence struct {
	ID               string             `json:"id"`
	ProspectID       string             `json:"prospectId"`
	ProspectURL      string             `json:"prospectUrl"`
	TovConfigID      string             `json:"tovConfigId"`
	AIGenerationID   string             `json:"aiGenerationId"`
	CompanyContext   string             `json:"companyContext"`
	Messages         []GeneratedMessage `json:"messages"`
	ProspectInsights Insights           `json:"prospectInsights"`
	CreatedAt        string             `json:"createdAt"`
}

// SequenceDetail is a MessageSequence with its related records resolved.
type SequenceDetail struct {
	MessageSequence
	Prospect     *Prospect         `json:"prospect,omitempty"`
	TovConfig    *StoredTovConfig  `json:"tovConfig,omitempty"`
	AIGeneration *GenerationRecord `json:"aiGeneration,omitempty"`
}
