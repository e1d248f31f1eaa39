// Package verify runs one verification end to end: prompt, model call,
// extraction and, for the extended shape, web search enrichment.
package verify

import (
	"context"
	"strings"
	"time"

	commonerrors "truecheck/internal/common/errors"
	"truecheck/internal/common/logger"
	"truecheck/internal/common/metrics"
	"truecheck/internal/common/observability"
	"truecheck/internal/common/validation"
	"truecheck/internal/models"
	buildprompt "truecheck/internal/pipeline/build-prompt"
	enrichwebsearch "truecheck/internal/pipeline/enrich-web-search"
	extractresult "truecheck/internal/pipeline/extract-result"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// ModelCaller sends a prompt to the model with the caller's credential.
type ModelCaller interface {
	Execute(ctx context.Context, prompt, apiKey string) (string, error)
}

// Enricher produces the explanation for an extended result. It must not fail.
type Enricher interface {
	Execute(ctx context.Context, data, verificationType string) enrichwebsearch.Output
}

type Service struct {
	model    ModelCaller
	enricher Enricher
	obs      *observability.Observability
	logger   logger.Logger
	tracer   trace.Tracer
}

// NewService wires the pipeline. obs may be nil.
func NewService(model ModelCaller, enricher Enricher, obs *observability.Observability, log logger.Logger) *Service {
	return &Service{
		model:    model,
		enricher: enricher,
		obs:      obs,
		logger:   log,
		tracer:   observability.Tracer("truecheck/verify"),
	}
}

// VerifyExtended answers with the v2 record. The model call and the search
// run concurrently. The only error is a failed model call; parse and search
// failures are reported inside the record.
func (s *Service) VerifyExtended(ctx context.Context, req *models.VerificationRequest) (models.ExtendedResult, error) {
	ctx, span := s.startSpan(ctx, req, models.ShapeExtended)
	defer span.End()
	start := time.Now()

	var (
		reply  string
		output enrichwebsearch.Output
	)
	prompt := buildprompt.Build(req.Data, req.Type, models.ShapeExtended)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reply, err = s.model.Execute(gctx, prompt, req.APIKey)
		return err
	})
	g.Go(func() error {
		output = s.enricher.Execute(gctx, req.Data, req.Type)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.finish(ctx, span, models.ShapeExtended, "model_error", start, err)
		return models.FallbackExtended(req.Type), err
	}

	verdict, parseErr := extractresult.Extended(reply)
	outcome := s.recordParse(models.ShapeExtended, parseErr)

	result := verdict.Merge(req.Type, output.Explanation)
	if vr := validation.ValidateExtendedResult(result); !vr.Valid {
		s.logger.Warn("result failed schema validation, using fallback", map[string]interface{}{
			"shape":  string(models.ShapeExtended),
			"errors": strings.Join(vr.GetErrorMessages(), "; "),
		})
		result = models.FallbackExtended(req.Type)
		outcome = "schema_violation"
	}

	span.SetAttributes(attribute.String("search.mode", string(output.Mode)))
	s.finish(ctx, span, models.ShapeExtended, outcome, start, nil)
	return result, nil
}

// VerifySimple answers with the v1 record. There is no search leg.
func (s *Service) VerifySimple(ctx context.Context, req *models.VerificationRequest) (models.SimpleResult, error) {
	ctx, span := s.startSpan(ctx, req, models.ShapeSimple)
	defer span.End()
	start := time.Now()

	prompt := buildprompt.Build(req.Data, req.Type, models.ShapeSimple)
	reply, err := s.model.Execute(ctx, prompt, req.APIKey)
	if err != nil {
		s.finish(ctx, span, models.ShapeSimple, "model_error", start, err)
		return models.FallbackSimple(), err
	}

	result, parseErr := extractresult.Simple(reply, req.Type)
	outcome := s.recordParse(models.ShapeSimple, parseErr)

	if vr := validation.ValidateSimpleResult(result); !vr.Valid {
		s.logger.Warn("result failed schema validation, using fallback", map[string]interface{}{
			"shape":  string(models.ShapeSimple),
			"errors": strings.Join(vr.GetErrorMessages(), "; "),
		})
		result = models.FallbackSimple()
		outcome = "schema_violation"
	}

	s.finish(ctx, span, models.ShapeSimple, outcome, start, nil)
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, req *models.VerificationRequest, shape models.Shape) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "verify."+string(shape), trace.WithAttributes(
		attribute.String("verification.type", req.Type),
		attribute.Int("verification.data_length", len(req.Data)),
	))
}

// recordParse counts a substituted result and returns the outcome label.
func (s *Service) recordParse(shape models.Shape, parseErr error) string {
	if parseErr == nil {
		return "success"
	}
	reason := extractresult.FailureReason(parseErr)
	metrics.ExtractionFallbacks.WithLabelValues(string(shape), reason).Inc()
	s.logger.Warn("model reply could not be parsed", map[string]interface{}{
		"shape":  string(shape),
		"reason": reason,
	})
	return "parse_error"
}

func (s *Service) finish(ctx context.Context, span trace.Span, shape models.Shape, outcome string, start time.Time, err error) {
	elapsed := time.Since(start)
	s.obs.RecordVerification(ctx, string(shape), outcome)
	s.obs.RecordDuration(ctx, elapsed, string(shape))
	span.SetAttributes(attribute.String("verification.outcome", outcome))

	if err != nil {
		stdErr := commonerrors.Normalize(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(stdErr.Code))
		return
	}
	s.logger.Info("verification completed", map[string]interface{}{
		"shape":       string(shape),
		"outcome":     outcome,
		"duration_ms": elapsed.Milliseconds(),
	})
}
