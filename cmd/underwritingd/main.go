package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/meridianbank/underwriting-service/internal/application/usecase"
	"github.com/meridianbank/underwriting-service/internal/domain/port"
	"github.com/meridianbank/underwriting-service/internal/domain/service"
	"github.com/meridianbank/underwriting-service/internal/infrastructure/config"
	"github.com/meridianbank/underwriting-service/internal/infrastructure/flags"
	"github.com/meridianbank/underwriting-service/internal/infrastructure/kafka"
	"github.com/meridianbank/underwriting-service/internal/infrastructure/messaging"
	"github.com/meridianbank/underwriting-service/internal/infrastructure/observability"
	grpcPresentation "github.com/meridianbank/underwriting-service/internal/presentation/grpc"
	"github.com/meridianbank/underwriting-service/internal/presentation/rest"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	logger.Info("starting underwriting-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Metrics registry and collector.
	registry := prometheus.NewRegistry()
	collector := observability.NewPrometheusCollector(registry)

	// Feature-flag provider. Without a flag store the service resolves every
	// flag to false, keeping v1 authoritative.
	var flagProvider port.FeatureFlagProvider
	if cfg.Redis.Addr != "" {
		redisProvider := flags.NewRedisProvider(cfg.Redis.Addr, false, logger)
		defer func() { _ = redisProvider.Close() }() //nolint:errcheck // best-effort close
		flagProvider = redisProvider
		logger.Info("feature flags backed by redis", "addr", cfg.Redis.Addr)
	} else {
		flagProvider = flags.NewStaticProvider(nil, false)
		logger.Info("no flag store configured, flags resolve to defaults")
	}

	// Decision event stream.
	kafkaProducer := kafka.NewProducer(kafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer func() { _ = kafkaProducer.Close() }() //nolint:errcheck // best-effort close
	publisher := messaging.NewKafkaEventPublisher(kafkaProducer, cfg.Kafka.DecisionTopic, logger)

	// Policy strategies and the router.
	underwriterV1 := service.NewDetailedUnderwriter("v1", service.PricingGridStandard)
	scorecardV2 := service.NewScorecardModel("v2")
	router := service.NewDecisionRouter(underwriterV1, scorecardV2, flagProvider, collector, cfg.ModelV2Flag)

	// Wire use cases.
	evaluateUC := usecase.NewEvaluateApplicationUseCase(router, publisher, logger)

	// gRPC server.
	handler := grpcPresentation.NewUnderwritingHandler(evaluateUC, logger)
	grpcServer := grpcPresentation.NewServer(handler, logger)

	// HTTP server (health checks and metrics exposition).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(logger)
	healthHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", observability.MetricsHandler(registry))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("underwriting-service stopped")
}
