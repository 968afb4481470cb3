package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"outreach-agent/internal/domain"
	"outreach-agent/internal/usecase"
)

const validBody = `{
  "prospectUrl": "https://linkedin.com/in/jane-doe",
  "tovConfig": {"formality": 0.8, "warmth": 0.6, "directness": 0.7},
  "companyContext": "  We help SaaS companies automate sales  ",
  "sequenceLength": 4
}`

type stubUseCase struct {
	out       usecase.GenerateOutput
	detail    domain.SequenceDetail
	err       error
	in        usecase.GenerateInput
	gotID     string
	generated bool
}

func (s *stubUseCase) Generate(_ context.Context, in usecase.GenerateInput) (usecase.GenerateOutput, error) {
	s.generated = true
	s.in = in
	return s.out, s.err
}

func (s *stubUseCase) Get(_ context.Context, id string) (domain.SequenceDetail, error) {
	s.gotID = id
	return s.detail, s.err
}

func makeEvent(body string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/api/generate-sequence",
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}

func parseBody[T any](t *testing.T, body string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return v
}

func newTestHandler(t *testing.T, uc SequenceUseCase) *Handler {
	t.Helper()
	h, err := NewHandler(uc, zaptest.NewLogger(t))
	require.NoError(t, err)
	return h
}

func TestNewHandler_ValidatesDependency(t *testing.T) {
	_, err := NewHandler(nil, nil)
	require.Error(t, err)
}

func TestHandle_GenerateHappyPath(t *testing.T) {
	uc := &stubUseCase{out: usecase.GenerateOutput{SequenceID: "seq-1"}}
	h := newTestHandler(t, uc)

	resp, err := h.Handle(context.Background(), makeEvent(validBody))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "application/json", resp.Headers["Content-Type"])
	require.NotEmpty(t, resp.Headers["X-Correlation-Id"])

	require.Equal(t, "https://linkedin.com/in/jane-doe", uc.in.ProspectURL)
	require.Equal(t, "We help SaaS companies automate sales", uc.in.CompanyContext)
	require.Equal(t, 4, uc.in.SequenceLength)
	require.Equal(t, 0.8, uc.in.Tov.Formality)
	require.Nil(t, uc.in.Tov.TechnicalDepth)

	out := parseBody[struct {
		Status  bool                   `json:"status"`
		Code    int                    `json:"code"`
		Message string                 `json:"message"`
		Data    usecase.GenerateOutput `json:"data"`
	}](t, resp.Body)
	require.True(t, out.Status)
	require.Equal(t, http.StatusCreated, out.Code)
	require.Equal(t, "Sequence generated successfully", out.Message)
	require.Equal(t, "seq-1", out.Data.SequenceID)
}

func TestHandle_GenerateOptionalFields(t *testing.T) {
	uc := &stubUseCase{}
	h := newTestHandler(t, uc)

	body := `{"prospectUrl":"https://linkedin.com/in/x","tovConfig":{"formality":0.5,"warmth":0.5,"directness":0.5,"technicalDepth":0},"companyContext":"ctx"}`
	resp, err := h.Handle(context.Background(), makeEvent(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, 0, uc.in.SequenceLength)
	require.NotNil(t, uc.in.Tov.TechnicalDepth)
	require.Equal(t, 0.0, *uc.in.Tov.TechnicalDepth)
	require.Nil(t, uc.in.Tov.Urgency)
}

func TestHandle_Base64Body(t *testing.T) {
	uc := &stubUseCase{}
	h := newTestHandler(t, uc)

	event := makeEvent(base64.StdEncoding.EncodeToString([]byte(validBody)))
	event.IsBase64Encoded = true
	resp, err := h.Handle(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, 4, uc.in.SequenceLength)
}

func TestHandle_InvalidBody(t *testing.T) {
	cases := map[string]string{
		"not json":          `not-json`,
		"missing url":       `{"tovConfig":{"formality":0.5,"warmth":0.5,"directness":0.5},"companyContext":"c"}`,
		"bad url":           `{"prospectUrl":"jane-doe","tovConfig":{"formality":0.5,"warmth":0.5,"directness":0.5},"companyContext":"c"}`,
		"missing tov field": `{"prospectUrl":"https://x.io/in/a","tovConfig":{"formality":0.5,"warmth":0.5},"companyContext":"c"}`,
		"tov out of range":  `{"prospectUrl":"https://x.io/in/a","tovConfig":{"formality":1.5,"warmth":0.5,"directness":0.5},"companyContext":"c"}`,
		"length too large":  `{"prospectUrl":"https://x.io/in/a","tovConfig":{"formality":0.5,"warmth":0.5,"directness":0.5},"companyContext":"c","sequenceLength":11}`,
		"length zero":       `{"prospectUrl":"https://x.io/in/a","tovConfig":{"formality":0.5,"warmth":0.5,"directness":0.5},"companyContext":"c","sequenceLength":0}`,
		"context not text":  `{"prospectUrl":"https://x.io/in/a","tovConfig":{"formality":0.5,"warmth":0.5,"directness":0.5},"companyContext":5}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			uc := &stubUseCase{}
			h := newTestHandler(t, uc)

			resp, err := h.Handle(context.Background(), makeEvent(body))
			require.NoError(t, err)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			require.False(t, uc.generated)

			out := parseBody[errorResponse](t, resp.Body)
			require.False(t, out.Status)
			require.Equal(t, http.StatusBadRequest, out.Code)
			require.Equal(t, string(usecase.ErrorInvalidInput), out.Error)
			require.NotEmpty(t, out.Message)
		})
	}
}

func TestHandle_MapsUseCaseErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{name: "invalid input", err: &usecase.Error{Code: usecase.ErrorInvalidInput, Reason: "empty_prospect_url"}, status: http.StatusBadRequest, code: string(usecase.ErrorInvalidInput), message: "Bad Request"},
		{name: "upstream", err: &usecase.Error{Code: usecase.ErrorUpstream, Reason: "generation_failed", Message: "AI generation failed: Invalid JSON response from AI"}, status: http.StatusBadGateway, code: string(usecase.ErrorUpstream), message: "AI generation failed: Invalid JSON response from AI"},
		{name: "internal", err: &usecase.Error{Code: usecase.ErrorInternal, Reason: "dynamodb_sequence_error"}, status: http.StatusInternalServerError, code: string(usecase.ErrorInternal), message: "Internal Server Error"},
		{name: "unexpected", err: errors.New("boom"), status: http.StatusInternalServerError, code: string(usecase.ErrorInternal), message: "Internal Server Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(t, &stubUseCase{err: tc.err})

			resp, err := h.Handle(context.Background(), makeEvent(validBody))
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)

			out := parseBody[errorResponse](t, resp.Body)
			require.Equal(t, tc.code, out.Error)
			require.Equal(t, tc.message, out.Message)
		})
	}
}

func TestHandle_GetSequence(t *testing.T) {
	uc := &stubUseCase{detail: domain.SequenceDetail{MessageSequence: domain.MessageSequence{ID: "seq-9"}}}
	h := newTestHandler(t, uc)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:     http.MethodGet,
		Path:           "/api/sequences/seq-9",
		PathParameters: map[string]string{"id": "seq-9"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "seq-9", uc.gotID)

	out := parseBody[struct {
		Status  bool                  `json:"status"`
		Message string                `json:"message"`
		Data    domain.SequenceDetail `json:"data"`
	}](t, resp.Body)
	require.True(t, out.Status)
	require.Equal(t, "Sequence fetched successfully", out.Message)
	require.Equal(t, "seq-9", out.Data.ID)
}

func TestHandle_GetSequenceFromPath(t *testing.T) {
	uc := &stubUseCase{}
	h := newTestHandler(t, uc)

	_, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/api/sequences/abc/",
	})
	require.NoError(t, err)
	require.Equal(t, "abc", uc.gotID)
}

func TestHandle_GetSequenceNotFound(t *testing.T) {
	uc := &stubUseCase{err: &usecase.Error{Code: usecase.ErrorNotFound, Reason: "sequence_not_found", Message: "Sequence not found"}}
	h := newTestHandler(t, uc)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/api/sequences/missing",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	out := parseBody[errorResponse](t, resp.Body)
	require.Equal(t, string(usecase.ErrorNotFound), out.Error)
	require.Equal(t, "Sequence not found", out.Message)
}

func TestHandle_UnknownRoute(t *testing.T) {
	uc := &stubUseCase{}
	h := newTestHandler(t, uc)

	for _, event := range []events.APIGatewayProxyRequest{
		{HTTPMethod: http.MethodGet, Path: "/api/generate-sequence"},
		{HTTPMethod: http.MethodPost, Path: "/api/sequences/abc"},
		{HTTPMethod: http.MethodGet, Path: "/health"},
	} {
		resp, err := h.Handle(context.Background(), event)
		require.NoError(t, err)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
	require.False(t, uc.generated)
	require.Empty(t, uc.gotID)
}

func TestHandle_Metrics(t *testing.T) {
	h := newTestHandler(t, &stubUseCase{})

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet, Path: "/metrics"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Headers["Content-Type"], "text/plain")
	require.Contains(t, resp.Body, "go_goroutines")
}

func TestHandle_UsesProvidedCorrelationID_CaseInsensitive(t *testing.T) {
	h := newTestHandler(t, &stubUseCase{})

	event := makeEvent(validBody)
	event.Headers["x-correlation-id"] = "corr-123"
	resp, err := h.Handle(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, "corr-123", resp.Headers["X-Correlation-Id"])
}
