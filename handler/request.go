package handler

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"outreach-agent/internal/domain"
	"outreach-agent/internal/usecase"
)

const generateRequestSchema = `{
  "type": "object",
  "required": ["prospectUrl", "tovConfig", "companyContext"],
  "properties": {
    "prospectUrl": {"type": "string", "format": "uri"},
    "tovConfig": {
      "type": "object",
      "required": ["formality", "warmth", "directness"],
      "properties": {
        "formality":      {"type": "number", "minimum": 0, "maximum": 1},
        "warmth":         {"type": "number", "minimum": 0, "maximum": 1},
        "directness":     {"type": "number", "minimum": 0, "maximum": 1},
        "technicalDepth": {"type": "number", "minimum": 0, "maximum": 1},
        "urgency":        {"type": "number", "minimum": 0, "maximum": 1}
      }
    },
    "companyContext": {"type": "string"},
    "sequenceLength": {"type": "integer", "minimum": 1, "maximum": 10}
  }
}`

var generateSchema = func() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(generateRequestSchema))
	if err != nil {
		panic(fmt.Sprintf("handler: compile request schema: %v", err))
	}
	return s
}()

type generateRequest struct {
	ProspectURL    string           `json:"prospectUrl"`
	TovConfig      domain.TovConfig `json:"tovConfig"`
	CompanyContext string           `json:"companyContext"`
	SequenceLength *int             `json:"sequenceLength,omitempty"`
}

// parseGenerateRequest validates body against the request schema and maps it
// to the usecase input.
func parseGenerateRequest(body string) (usecase.GenerateInput, error) {
	result, err := generateSchema.Validate(gojsonschema.NewStringLoader(body))
	if err != nil {
		return usecase.GenerateInput{}, fmt.Errorf("request body is not valid JSON")
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return usecase.GenerateInput{}, fmt.Errorf("%s", strings.Join(errs, "; "))
	}

	var req generateRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return usecase.GenerateInput{}, fmt.Errorf("request body is not valid JSON")
	}

	in := usecase.GenerateInput{
		ProspectURL:    req.ProspectURL,
		Tov:            req.TovConfig,
		CompanyContext: strings.TrimSpace(req.CompanyContext),
	}
	if req.SequenceLength != nil {
		in.SequenceLength = *req.SequenceLength
	}
	return in, nil
}
