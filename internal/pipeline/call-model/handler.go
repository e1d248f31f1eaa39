// Package callmodel issues the generateContent call for a rendered prompt.
package callmodel

import (
	"context"
	"errors"
	"net/http"
	"time"

	commonerrors "truecheck/internal/common/errors"
	commonhttp "truecheck/internal/common/http"
	"truecheck/internal/common/logger"
	"truecheck/internal/common/metrics"
	"truecheck/internal/common/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

const (
	TaskType     = "call-model"
	UpstreamName = "gemini"
)

type Handler struct {
	config     *Config
	httpClient *http.Client
	logger     logger.Logger
	tracer     trace.Tracer
}

// NewHandler shares httpClient's connection pool across all calls. The
// genai client itself is built per call because the credential is per call.
func NewHandler(config *Config, httpClient *http.Client, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		httpClient: httpClient,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
			"model":    config.Model,
		}),
		tracer: observability.Tracer("truecheck/call-model"),
	}
}

// Execute sends prompt to the model with the caller's apiKey and returns the
// first text part of the first candidate, or "" when the reply has none.
// Transient failures (network, 429, 5xx) are retried up to MaxRetries times.
func (h *Handler) Execute(ctx context.Context, prompt, apiKey string) (string, error) {
	ctx, span := h.tracer.Start(ctx, "callmodel.Execute", trace.WithAttributes(
		attribute.String("gen_ai.request.model", h.config.Model),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.UpstreamCallDuration.WithLabelValues(UpstreamName).Observe(time.Since(start).Seconds())
	}()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: h.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    h.config.BaseURL,
			APIVersion: h.config.APIVersion,
		},
	})
	if err != nil {
		metrics.UpstreamCalls.WithLabelValues(UpstreamName, "client_error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "client init failed")
		return "", commonerrors.NewInternalError(err)
	}

	var text string
	attempts := 0
	err = commonhttp.DoWithRetry(ctx, h.config.MaxRetries, h.config.InitialBackoff, commonerrors.IsRetryable,
		func(ctx context.Context, attempt int) error {
			attempts = attempt + 1
			if attempt > 0 {
				h.logger.Warn("retrying model call", map[string]interface{}{"attempt": attempts})
			}

			attemptCtx := ctx
			if h.config.Timeout > 0 {
				var cancel context.CancelFunc
				attemptCtx, cancel = context.WithTimeout(ctx, h.config.Timeout)
				defer cancel()
			}

			resp, err := client.Models.GenerateContent(attemptCtx, h.config.Model, genai.Text(prompt), nil)
			if err != nil {
				return classify(attemptCtx, err)
			}
			text = FirstText(resp)
			return nil
		})
	span.SetAttributes(attribute.Int("attempts", attempts))

	if err != nil {
		stdErr := commonerrors.Normalize(err)
		metrics.UpstreamCalls.WithLabelValues(UpstreamName, string(stdErr.Code)).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, string(stdErr.Code))
		h.logger.Error("model call failed", map[string]interface{}{
			"errorCode":      string(stdErr.Code),
			"upstreamStatus": stdErr.StatusCode,
			"attempts":       attempts,
			"duration_ms":    time.Since(start).Milliseconds(),
		})
		return "", err
	}

	metrics.UpstreamCalls.WithLabelValues(UpstreamName, "success").Inc()
	h.logger.Info("model call completed", map[string]interface{}{
		"attempts":    attempts,
		"replyLength": len(text),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return text, nil
}

// classify maps an SDK error onto the upstream/network taxonomy.
func classify(ctx context.Context, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return commonerrors.NewUpstreamError(UpstreamName, apiErr.Code, apiErr.Message)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return commonerrors.NewLLMTimeoutError(err)
	}
	return commonerrors.NewNetworkError(UpstreamName, err)
}

// FirstText returns the text of the first part of the first candidate.
func FirstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil || len(c.Content.Parts) == 0 || c.Content.Parts[0] == nil {
		return ""
	}
	return c.Content.Parts[0].Text
}
