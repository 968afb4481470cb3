package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"outreach-agent/internal/domain"
	"outreach-agent/internal/metrics"
	"outreach-agent/internal/usecase"
)

const (
	correlationHeader = "X-Correlation-Id"
	generatePath      = "/api/generate-sequence"
	sequencesPrefix   = "/api/sequences/"
	metricsPath       = "/metrics"
)

type SequenceUseCase interface {
	Generate(ctx context.Context, in usecase.GenerateInput) (usecase.GenerateOutput, error)
	Get(ctx context.Context, id string) (domain.SequenceDetail, error)
}

type Handler struct {
	uc     SequenceUseCase
	logger *zap.Logger
}

type successResponse struct {
	Status  bool   `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type errorResponse struct {
	Status  bool   `json:"status"`
	Code    int    `json:"code"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func NewHandler(uc SequenceUseCase, logger *zap.Logger) (*Handler, error) {
	if uc == nil {
		return nil, errors.New("handler: use case must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{uc: uc, logger: logger}, nil
}

// Handle serves API Gateway proxy events. Failures are always rendered as an
// error envelope; the returned error is reserved for the Lambda runtime.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	correlationID := headerValue(event.Headers, correlationHeader)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	log := h.logger.With(
		zap.String("correlationId", correlationID),
		zap.String("method", event.HTTPMethod),
		zap.String("path", event.Path),
	)

	path := strings.TrimSuffix(event.Path, "/")
	switch {
	case path == generatePath && event.HTTPMethod == http.MethodPost:
		return h.generate(ctx, log, event, correlationID), nil
	case strings.HasPrefix(path, sequencesPrefix) && event.HTTPMethod == http.MethodGet:
		id := event.PathParameters["id"]
		if id == "" {
			id = strings.TrimPrefix(path, sequencesPrefix)
		}
		return h.getSequence(ctx, log, id, correlationID), nil
	case path == metricsPath && event.HTTPMethod == http.MethodGet:
		return h.serveMetrics(log, correlationID), nil
	default:
		return errorJSON(http.StatusNotFound, usecase.ErrorNotFound, "route not found", correlationID), nil
	}
}

func (h *Handler) generate(ctx context.Context, log *zap.Logger, event events.APIGatewayProxyRequest, correlationID string) events.APIGatewayProxyResponse {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errorJSON(http.StatusBadRequest, usecase.ErrorInvalidInput, "request body is not valid base64", correlationID)
		}
		body = string(decoded)
	}

	in, err := parseGenerateRequest(body)
	if err != nil {
		log.Info("rejected generate request", zap.Error(err))
		return errorJSON(http.StatusBadRequest, usecase.ErrorInvalidInput, err.Error(), correlationID)
	}

	out, err := h.uc.Generate(ctx, in)
	if err != nil {
		return h.fail(log, err, correlationID)
	}
	log.Info("sequence generated", zap.String("sequenceId", out.SequenceID))
	return successJSON(http.StatusCreated, "Sequence generated successfully", out, correlationID)
}

func (h *Handler) getSequence(ctx context.Context, log *zap.Logger, id, correlationID string) events.APIGatewayProxyResponse {
	detail, err := h.uc.Get(ctx, id)
	if err != nil {
		return h.fail(log, err, correlationID)
	}
	return successJSON(http.StatusOK, "Sequence fetched successfully", detail, correlationID)
}

func (h *Handler) serveMetrics(log *zap.Logger, correlationID string) events.APIGatewayProxyResponse {
	body, contentType, err := metrics.Render()
	if err != nil {
		log.Error("render metrics", zap.Error(err))
		return errorJSON(http.StatusInternalServerError, usecase.ErrorInternal, http.StatusText(http.StatusInternalServerError), correlationID)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":    contentType,
			correlationHeader: correlationID,
		},
		Body: body,
	}
}

func (h *Handler) fail(log *zap.Logger, err error, correlationID string) events.APIGatewayProxyResponse {
	status, code, message := mapError(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.String("code", string(code)), zap.Error(err))
	} else {
		log.Info("request rejected", zap.String("code", string(code)), zap.Error(err))
	}
	return errorJSON(status, code, message, correlationID)
}

func mapError(err error) (int, usecase.ErrorCode, string) {
	var ucErr *usecase.Error
	if !errors.As(err, &ucErr) {
		return http.StatusInternalServerError, usecase.ErrorInternal, http.StatusText(http.StatusInternalServerError)
	}

	status := http.StatusInternalServerError
	switch ucErr.Code {
	case usecase.ErrorInvalidInput:
		status = http.StatusBadRequest
	case usecase.ErrorNotFound:
		status = http.StatusNotFound
	case usecase.ErrorUpstream:
		status = http.StatusBadGateway
	}

	message := ucErr.Message
	if message == "" {
		message = http.StatusText(status)
	}
	return status, ucErr.Code, message
}

func headerValue(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return strings.TrimSpace(v)
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func successJSON(status int, message string, data any, correlationID string) events.APIGatewayProxyResponse {
	return writeJSON(status, successResponse{Status: true, Code: status, Message: message, Data: data}, correlationID)
}

func errorJSON(status int, code usecase.ErrorCode, message, correlationID string) events.APIGatewayProxyResponse {
	return writeJSON(status, errorResponse{Status: false, Code: status, Error: string(code), Message: message}, correlationID)
}

func writeJSON(status int, v any, correlationID string) events.APIGatewayProxyResponse {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"status":false,"code":500,"error":"INTERNAL_ERROR","message":"Internal Server Error"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: correlationID,
		},
		Body: string(body),
	}
}
