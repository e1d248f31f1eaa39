package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"truecheck/internal/common/config"
	"truecheck/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, os.Stdout)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	if a.cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:         a.cfg.Server.Address,
		Handler:      server.NewFromConfig(a.cfg, a.service, a.log).Handler(),
		ReadTimeout:  config.GetDuration(a.cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(a.cfg.Server.WriteTimeout),
	}

	errCh := make(chan error, 1)
	go func() {
		a.zapLog.Info("HTTP server listening",
			zap.String("address", srv.Addr),
			zap.String("model", a.cfg.APIs.GenAI.Model),
			zap.Bool("webSearchLive", a.cfg.APIs.WebSearch.Enabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err, ok := <-errCh:
		if ok {
			a.zapLog.Error("HTTP server failed", zap.Error(err))
			return err
		}
		return nil
	case sig := <-sigCh:
		a.zapLog.Info("Shutdown signal received, draining requests...", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(a.cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.zapLog.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	a.zapLog.Info("HTTP server stopped")
	return nil
}
