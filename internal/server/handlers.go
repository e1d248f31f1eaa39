package server

import (
	"errors"
	"net/http"
	"time"

	commonerrors "truecheck/internal/common/errors"
	"truecheck/internal/common/metrics"
	"truecheck/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func (s *Server) verifyExtended(c *gin.Context) {
	route := c.FullPath()
	outcome := "panic"
	defer s.track(route, &outcome)()

	req, ok := s.bind(c, route)
	if !ok {
		outcome = "bad_request"
		return
	}

	result, err := s.verifier.VerifyExtended(c.Request.Context(), req)
	if err != nil {
		s.errHandler.Handle(err, s.errorFields(c, req))
		outcome = "model_error"
		c.JSON(http.StatusInternalServerError, models.ExtendedResponse{
			Results: []models.ExtendedResult{models.FallbackExtended(req.Type)},
		})
		return
	}

	outcome = "success"
	c.JSON(http.StatusOK, models.ExtendedResponse{Results: []models.ExtendedResult{result}})
}

func (s *Server) verifySimple(c *gin.Context) {
	route := c.FullPath()
	outcome := "panic"
	defer s.track(route, &outcome)()

	req, ok := s.bind(c, route)
	if !ok {
		outcome = "bad_request"
		return
	}

	result, err := s.verifier.VerifySimple(c.Request.Context(), req)
	if err != nil {
		s.errHandler.Handle(err, s.errorFields(c, req))
		outcome = "model_error"
		c.JSON(http.StatusInternalServerError, models.SimpleResponse{
			Results: []models.SimpleResult{models.FallbackSimple()},
		})
		return
	}

	outcome = "success"
	c.JSON(http.StatusOK, models.SimpleResponse{Results: []models.SimpleResult{result}})
}

// bind decodes and validates the body, answering 400 itself on failure.
// Any of data, type or apiKey missing or empty is a validation error; a body
// that does not decode is an invalid body.
func (s *Server) bind(c *gin.Context, route string) (*models.VerificationRequest, bool) {
	var req models.VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var stdErr *commonerrors.StandardError
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			stdErr = commonerrors.NewValidationError(err.Error())
		} else {
			stdErr = commonerrors.NewInvalidBodyError(err)
		}
		s.errHandler.Handle(stdErr, map[string]interface{}{
			"route":     route,
			"requestId": c.GetString(ctxKeyRequestID),
		})
		c.JSON(commonerrors.HTTPStatus(stdErr.Code), models.ErrorResponse{Error: stdErr.Message})
		return nil, false
	}

	c.Set(ctxKeyType, req.Type)
	return &req, true
}

// track marks the request in flight and returns the func that records it,
// reading *outcome when called. Deferred, it also runs on panic.
func (s *Server) track(route string, outcome *string) func() {
	start := time.Now()
	metrics.InFlightRequests.Inc()
	return func() {
		metrics.InFlightRequests.Dec()
		metrics.VerificationRequests.WithLabelValues(route, *outcome).Inc()
		metrics.VerificationDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func (s *Server) errorFields(c *gin.Context, req *models.VerificationRequest) map[string]interface{} {
	return map[string]interface{}{
		"route":            c.FullPath(),
		"requestId":        c.GetString(ctxKeyRequestID),
		"verificationType": req.Type,
	}
}
