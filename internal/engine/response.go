package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"outreach-agent/internal/domain"
)

// ErrInvalidResponse is the message reported when the provider content is
// not a valid structured sequence.
const ErrInvalidResponse = "Invalid JSON response from AI"

const responseSchemaJSON = `{
	"type": "object",
	"required": ["thinkingProcess", "prospectInsights", "messages"],
	"properties": {
		"thinkingProcess": {"type": "string"},
		"prospectInsights": {
			"type": "object",
			"required": ["keyChallenges", "personalizationAngles", "decisionMakingFactors"],
			"properties": {
				"keyChallenges": {"type": "array", "items": {"type": "string"}},
				"personalizationAngles": {"type": "array", "items": {"type": "string"}},
				"decisionMakingFactors": {"type": "array", "items": {"type": "string"}}
			}
		},
		"messages": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["sequenceNumber", "purpose", "message", "confidenceScore", "reasoning"],
				"properties": {
					"sequenceNumber": {"type": "integer", "minimum": 1},
					"purpose": {"type": "string"},
					"message": {"type": "string"},
					"confidenceScore": {"type": "number"},
					"reasoning": {"type": "string"}
				}
			}
		}
	}
}`

var responseSchema = mustCompileSchema(responseSchemaJSON)

func mustCompileSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("engine: compile response schema: %v", err))
	}
	return schema
}

// parseGeneration validates raw provider content against the response schema
// and decodes it. The sequence must hold exactly want messages numbered 1..want.
func parseGeneration(raw string, want int) (domain.GenerationData, error) {
	raw = strings.TrimSpace(raw)
	res, err := responseSchema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return domain.GenerationData{}, fmt.Errorf("engine: decode response: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return domain.GenerationData{}, fmt.Errorf("engine: response does not match schema: %s", strings.Join(msgs, "; "))
	}

	var out domain.GenerationData
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return domain.GenerationData{}, fmt.Errorf("engine: decode response: %w", err)
	}
	if len(out.Messages) != want {
		return domain.GenerationData{}, fmt.Errorf("engine: expected %d messages, got %d", want, len(out.Messages))
	}
	for i, m := range out.Messages {
		if m.SequenceNumber != i+1 {
			return domain.GenerationData{}, errors.New("engine: messages are not numbered 1..n in order")
		}
	}
	return out, nil
}
