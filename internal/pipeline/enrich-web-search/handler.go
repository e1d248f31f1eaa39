// Package enrichwebsearch explains a verification with a web search. It
// never fails: missing credentials, empty results and errors all produce a
// usable explanation.
package enrichwebsearch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	commonerrors "truecheck/internal/common/errors"
	"truecheck/internal/common/logger"
	"truecheck/internal/common/metrics"
	"truecheck/internal/common/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

const (
	TaskType     = "enrich-web-search"
	UpstreamName = "customsearch"

	maxSummaryItems = 3
	maxSummaryRunes = 200
)

type Handler struct {
	config  *Config
	service *customsearch.Service
	logger  logger.Logger
	tracer  trace.Tracer
}

// NewHandler builds the search client once when credentials are configured.
// Without them the handler runs in mock mode and never touches the network.
func NewHandler(ctx context.Context, config *Config, log logger.Logger) (*Handler, error) {
	h := &Handler{
		config: config,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
		tracer: observability.Tracer("truecheck/enrich-web-search"),
	}
	if !config.Live() {
		h.logger.Info("web search credentials not configured, using mock explanations", nil)
		return h, nil
	}

	opts := []option.ClientOption{option.WithAPIKey(config.SearchAPIKey)}
	if config.SearchAPIBaseURL != "" {
		opts = append(opts, option.WithEndpoint(config.SearchAPIBaseURL))
	}
	service, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, commonerrors.NewInternalError(err)
	}
	h.service = service
	return h, nil
}

// Execute returns an explanation for data of the given type.
func (h *Handler) Execute(ctx context.Context, data, verificationType string) Output {
	ctx, span := h.tracer.Start(ctx, "enrichwebsearch.Execute", trace.WithAttributes(
		attribute.String("verification.type", verificationType),
	))
	defer span.End()

	output := h.execute(ctx, data, verificationType)
	span.SetAttributes(attribute.String("search.mode", string(output.Mode)))
	metrics.SearchMode.WithLabelValues(string(output.Mode)).Inc()
	return output
}

func (h *Handler) execute(ctx context.Context, data, verificationType string) Output {
	if h.service == nil {
		return canned(verificationType, ModeMock)
	}

	query := Queries(data, verificationType)[0]

	start := time.Now()
	items, err := h.search(ctx, query)
	metrics.UpstreamCallDuration.WithLabelValues(UpstreamName).Observe(time.Since(start).Seconds())
	if err != nil {
		stdErr := commonerrors.Normalize(err)
		metrics.UpstreamCalls.WithLabelValues(UpstreamName, string(stdErr.Code)).Inc()
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(stdErr.Code))
		h.logger.Warn("web search failed, using canned explanation", map[string]interface{}{
			"errorCode":   string(stdErr.Code),
			"error":       stdErr.Details,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return canned(verificationType, ModeCanned)
	}
	metrics.UpstreamCalls.WithLabelValues(UpstreamName, "success").Inc()

	h.logger.Info("web search completed", map[string]interface{}{
		"resultCount": len(items),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if len(items) == 0 {
		return Output{
			Explanation: noSourcesExplanation(verificationType),
			Sources:     []string{},
			Mode:        ModeEmpty,
		}
	}
	return summarize(items)
}

// search runs one query. Query text is not logged because medical and custom
// queries contain the caller's data.
func (h *Handler) search(ctx context.Context, query string) ([]*customsearch.Result, error) {
	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	call := h.service.Cse.List().
		Cx(h.config.SearchEngineID).
		Q(query).
		Context(ctx)
	if h.config.MaxResults > 0 {
		call = call.Num(int64(h.config.MaxResults))
	}
	if h.config.Safe != "" {
		call = call.Safe(h.config.Safe)
	}

	resp, err := call.Do()
	if err != nil {
		err = withoutURL(err)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, commonerrors.NewWebSearchTimeoutError(err)
		}
		return nil, commonerrors.NewSearchFailedError(err)
	}
	return resp.Items, nil
}

// withoutURL drops the request URL from transport errors. It carries the query
// and the server key.
func withoutURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

// summarize builds the explanation from the first three items.
func summarize(items []*customsearch.Result) Output {
	if len(items) > maxSummaryItems {
		items = items[:maxSummaryItems]
	}

	sources := make([]string, 0, len(items))
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		sources = append(sources, item.DisplayLink)
		parts = append(parts, item.Title+": "+item.Snippet)
	}

	summary := truncateRunes(strings.Join(parts, " "), maxSummaryRunes)
	return Output{
		Explanation: formatExplanation(strings.Join(sources, ", "), summary),
		Sources:     sources,
		Mode:        ModeLive,
	}
}

func canned(verificationType string, mode Mode) Output {
	explanation, sources := Canned(verificationType)
	return Output{
		Explanation: explanation,
		Sources:     sources,
		Mode:        mode,
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
