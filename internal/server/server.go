// Package server provides the service lifecycle runner: signal handling,
// config loading, observability init, the HTTP responder, and graceful
// shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/fargate-labs/greeter/internal/config"
	"github.com/fargate-labs/greeter/internal/domain"
	"github.com/fargate-labs/greeter/internal/greeter/port"
	"github.com/fargate-labs/greeter/internal/observability"
)

const serviceVersion = "0.1.0"

// Params configures the lifecycle runner.
type Params struct {
	// Name identifies the service in logs and telemetry.
	Name string
}

// Run executes the full service lifecycle. It returns nil after a graceful
// shutdown (SIGTERM/SIGINT or ctx cancellation) and an error on any startup
// failure — most importantly a bind failure, which callers must treat as
// fatal. If ln is non-nil it is used instead of binding from config, which
// enables port-0 testing.
func Run(ctx context.Context, p Params, ln net.Listener) error {
	// Signal-based cancellation: ctx.Done() closes on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: p.Name,
		Environment: cfg.Environment,
	})

	// Startup order: tracer -> metrics -> HTTP server.

	tracerProvider, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName:    p.Name,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTEL.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("initialize tracer: %w", err)
	}

	metricsProvider, err := observability.InitMetrics(ctx, observability.MetricsConfig{
		ServiceName:    p.Name,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTEL.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("initialize metrics: %w", err)
	}

	handler, err := port.NewHandler(cfg.Greeter.Message)
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}

	// Bind the listener. Fail-fast: a port already in use is fatal, with no
	// retry and no fallback port.
	if ln == nil {
		ln, err = (&net.ListenConfig{}).Listen(ctx, "tcp", fmt.Sprintf(":%d", cfg.Greeter.HTTPPort))
		if err != nil {
			return fmt.Errorf("listen on port %d: %w", cfg.Greeter.HTTPPort, err)
		}
	}

	server := &http.Server{
		Handler:      handler.Routes(),
		ReadTimeout:  domain.ReadTimeout,
		WriteTimeout: domain.WriteTimeout,
		IdleTimeout:  domain.IdleTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)

	// Goroutine 1: serve HTTP.
	g.Go(func() error {
		logger.Info("listening",
			slog.String("addr", ln.Addr().String()),
			slog.String("environment", cfg.Environment),
		)
		if serveErr := server.Serve(ln); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})

	// Goroutine 2: shutdown trigger. Waits for cancellation, then drains in
	// reverse startup order: HTTP server -> metrics -> tracer.
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("received shutdown signal, starting graceful shutdown")

		httpCtx, httpCancel := context.WithTimeout(context.Background(), domain.ShutdownHTTPTimeout)
		defer httpCancel()
		if shutdownErr := server.Shutdown(httpCtx); shutdownErr != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", shutdownErr.Error()))
		}

		otelCtx, otelCancel := context.WithTimeout(context.Background(), domain.ShutdownOTELTimeout)
		defer otelCancel()
		if shutdownErr := metricsProvider.Shutdown(otelCtx); shutdownErr != nil {
			logger.Error("failed to shutdown metrics", slog.String("error", shutdownErr.Error()))
		}
		if shutdownErr := tracerProvider.Shutdown(otelCtx); shutdownErr != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", shutdownErr.Error()))
		}

		logger.Info("shutdown complete")
		return nil
	})

	return g.Wait()
}
