package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/saturnino-fabrica-de-software/aivi/internal/api"
	"github.com/saturnino-fabrica-de-software/aivi/internal/audit"
	"github.com/saturnino-fabrica-de-software/aivi/internal/config"
	"github.com/saturnino-fabrica-de-software/aivi/internal/face"
	"github.com/saturnino-fabrica-de-software/aivi/internal/memory"
	"github.com/saturnino-fabrica-de-software/aivi/internal/metrics"
	"github.com/saturnino-fabrica-de-software/aivi/internal/repository"
	"github.com/saturnino-fabrica-de-software/aivi/internal/seed"
	"github.com/saturnino-fabrica-de-software/aivi/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting AIVI API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.String("storage", cfg.StorageDriver),
		slog.String("provider", cfg.ProviderType),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	faceProvider, err := face.NewFaceProvider(cfg)
	if err != nil {
		return fmt.Errorf("failed to create face provider: %w", err)
	}

	tolerance, err := face.MatchTolerance(cfg)
	if err != nil {
		return fmt.Errorf("failed to resolve match tolerance: %w", err)
	}
	logger.Info("match tolerance", slog.Float64("tolerance", tolerance))

	repo, err := repository.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("close repository", slog.Any("error", err))
		}
	}()

	m := metrics.New()
	index := memory.NewIndex()

	// Seed directory first, then durable identities
	bootstrap := service.NewBootstrap(repo, seed.NewLoader(faceProvider, logger), index, m, logger)
	if err := bootstrap.Run(ctx, cfg.KnownFacesDir); err != nil {
		return fmt.Errorf("failed to load identities: %w", err)
	}

	auditLogger := audit.NewSlogLogger(logger, cfg.ProviderType)

	recognition := service.NewRecognitionService(index, faceProvider, m, logger).
		WithTolerance(tolerance).
		WithAuditLogger(auditLogger)
	enrollment := service.NewEnrollmentService(index, repo, faceProvider, m, logger).
		WithAuditLogger(auditLogger)

	sampler := metrics.NewSampler(m, index, repo, logger, 0)
	go sampler.Start(ctx)
	defer sampler.Stop()

	// Setup router
	router := api.NewRouter(logger, &api.Dependencies{
		Recognition:  recognition,
		Enrollment:   enrollment,
		Index:        index,
		Storage:      repo,
		Metrics:      m,
		RateLimitMax: cfg.RateLimitMax,
	})
	router.Setup()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutting down server...")
	if err := router.Shutdown(); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	logger.Info("server stopped")

	return nil
}
