package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/saturnino-fabrica-de-software/aivi/internal/config"
	"github.com/saturnino-fabrica-de-software/aivi/internal/face"
	"github.com/saturnino-fabrica-de-software/aivi/internal/memory"
	"github.com/saturnino-fabrica-de-software/aivi/internal/repository"
	"github.com/saturnino-fabrica-de-software/aivi/internal/seed"
	"github.com/saturnino-fabrica-de-software/aivi/internal/service"
)

// app is the same object graph cmd/api builds, minus HTTP
type app struct {
	cfg         *config.Config
	logger      *slog.Logger
	repo        repository.IdentityRepository
	index       *memory.Index
	recognition *service.RecognitionService
	enrollment  *service.EnrollmentService
}

func openApp(ctx context.Context, logOut io.Writer, verbose bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level})).
		With(slog.String("service", "aivictl"))

	faceProvider, err := face.NewFaceProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("create face provider: %w", err)
	}

	tolerance, err := face.MatchTolerance(cfg)
	if err != nil {
		return nil, err
	}

	repo, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	index := memory.NewIndex()
	bootstrap := service.NewBootstrap(repo, seed.NewLoader(faceProvider, logger), index, nil, logger)
	if err := bootstrap.Run(ctx, cfg.KnownFacesDir); err != nil {
		_ = repo.Close()
		return nil, err
	}

	return &app{
		cfg:         cfg,
		logger:      logger,
		repo:        repo,
		index:       index,
		recognition: service.NewRecognitionService(index, faceProvider, nil, logger).WithTolerance(tolerance),
		enrollment:  service.NewEnrollmentService(index, repo, faceProvider, nil, logger),
	}, nil
}

func (a *app) Close() error {
	return a.repo.Close()
}
