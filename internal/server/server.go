// Package server exposes the verification pipeline over HTTP.
package server

import (
	"context"
	"io"
	"net/http"
	"strings"

	"truecheck/internal/common/config"
	commonerrors "truecheck/internal/common/errors"
	"truecheck/internal/common/logger"
	"truecheck/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	RouteVerify   = "/api/verify"
	RouteVerifyV1 = "/api/v1/verify"
	RouteVerifyV2 = "/api/v2/verify"
	RouteTypes    = "/api/types"
)

// Verifier is the pipeline behind the verify routes.
type Verifier interface {
	VerifyExtended(ctx context.Context, req *models.VerificationRequest) (models.ExtendedResult, error)
	VerifySimple(ctx context.Context, req *models.VerificationRequest) (models.SimpleResult, error)
}

type Options struct {
	ServiceName    string
	AllowedOrigins []string
	Verifier       Verifier
	Logger         logger.Logger
}

type Server struct {
	router     *gin.Engine
	verifier   Verifier
	logger     logger.Logger
	errHandler *commonerrors.ErrorHandler
}

// New builds the router. Middleware order: recovery, request id, access log,
// tracing, CORS.
func New(opts Options) *Server {
	s := &Server{
		router:     gin.New(),
		verifier:   opts.Verifier,
		logger:     opts.Logger,
		errHandler: commonerrors.NewErrorHandler(opts.Logger),
	}

	s.router.Use(gin.CustomRecoveryWithWriter(io.Discard, s.recoverPanic))
	s.router.Use(requestID())
	s.router.Use(accessLog(opts.Logger))
	if opts.ServiceName != "" {
		s.router.Use(otelgin.Middleware(opts.ServiceName))
	}
	if mw := corsMiddleware(opts.AllowedOrigins); mw != nil {
		s.router.Use(mw)
	}

	s.routes()
	return s
}

// NewFromConfig is New with the listener settings taken from cfg.
func NewFromConfig(cfg *config.Config, verifier Verifier, log logger.Logger) *Server {
	return New(Options{
		ServiceName:    cfg.Tracing.ServiceName,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Verifier:       verifier,
		Logger:         log,
	})
}

func (s *Server) routes() {
	s.router.GET("/health", s.health)
	s.router.GET("/ready", s.ready)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	api.GET("/types", s.listTypes)
	api.POST("/verify", s.verifyExtended)
	api.POST("/v1/verify", s.verifySimple)
	api.POST("/v2/verify", s.verifyExtended)
}

// Handler returns the router as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) ready(c *gin.Context) {
	if s.verifier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (s *Server) listTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": models.SupportedTypes})
}

// corsMiddleware returns nil when no origins are configured. "*" allows all.
func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}

	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", headerRequestID},
		ExposeHeaders: []string{headerRequestID},
	}
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = origins
	return cors.New(cfg)
}
