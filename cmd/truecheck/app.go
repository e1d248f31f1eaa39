package main

import (
	"context"
	"fmt"
	"io"

	"truecheck/internal/common/config"
	commonhttp "truecheck/internal/common/http"
	"truecheck/internal/common/logger"
	"truecheck/internal/common/observability"
	callmodel "truecheck/internal/pipeline/call-model"
	enrichwebsearch "truecheck/internal/pipeline/enrich-web-search"
	"truecheck/internal/pipeline/verify"

	"go.uber.org/zap"
)

// app holds everything a command needs, built once from config.
type app struct {
	cfg      *config.Config
	zapLog   *zap.Logger
	log      logger.Logger
	obs      *observability.Observability
	service  *verify.Service
	shutdown observability.ShutdownFunc
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// newApp wires the pipeline. Spans are written to traceOut.
func newApp(ctx context.Context, traceOut io.Writer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.NewZapAdapter(zapLog).With(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	shutdown, err := observability.InitTracing(cfg.Tracing.Exporter, cfg.Tracing.ServiceName, traceOut)
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	obs := observability.New(cfg.Tracing.ServiceName, log)

	modelCfg := callmodel.LoadConfig(cfg.APIs.GenAI)
	httpClient := commonhttp.NewClient(0).HTTPClient() // per-attempt timeouts come from the context
	model := callmodel.NewHandler(modelCfg, httpClient, log)

	enricher, err := enrichwebsearch.NewHandler(ctx, enrichwebsearch.LoadConfig(cfg.APIs.WebSearch), log)
	if err != nil {
		return nil, fmt.Errorf("web search init failed: %w", err)
	}

	return &app{
		cfg:      cfg,
		zapLog:   zapLog,
		log:      log,
		obs:      obs,
		service:  verify.NewService(model, enricher, obs, log),
		shutdown: shutdown,
	}, nil
}

func (a *app) close(ctx context.Context) {
	if err := a.shutdown(ctx); err != nil {
		a.log.Warn("tracer shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	a.obs.Shutdown()
	_ = a.zapLog.Sync()
}
