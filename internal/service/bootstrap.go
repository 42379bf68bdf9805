package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
	"github.com/saturnino-fabrica-de-software/aivi/internal/memory"
	"github.com/saturnino-fabrica-de-software/aivi/internal/metrics"
)

// IdentityCatalog is the read side of the durable repository used at startup
type IdentityCatalog interface {
	EnsureSchema(ctx context.Context) error
	ListAll(ctx context.Context) ([]domain.Identity, error)
}

type SeedLoader interface {
	Load(ctx context.Context, dir string) ([]domain.Identity, error)
}

// Bootstrap fills the index once at process start: seed files first, then
// repository rows. Rows written later by other processes are not picked up.
type Bootstrap struct {
	repo    IdentityCatalog
	loader  SeedLoader
	index   *memory.Index
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewBootstrap(repo IdentityCatalog, loader SeedLoader, index *memory.Index, m *metrics.Metrics, logger *slog.Logger) *Bootstrap {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bootstrap{
		repo:    repo,
		loader:  loader,
		index:   index,
		metrics: m,
		logger:  logger,
	}
}

func (b *Bootstrap) Run(ctx context.Context, seedDir string) error {
	if err := b.repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	seeds, err := b.loader.Load(ctx, seedDir)
	if err != nil {
		return fmt.Errorf("load seed identities: %w", err)
	}

	stored, err := b.repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list stored identities: %w", err)
	}

	b.index.Initialize(seeds, stored)
	b.metrics.SetIndexSize(b.index.Len())

	b.logger.Info("identity index ready",
		slog.Int("seed", len(seeds)),
		slog.Int("stored", len(stored)),
		slog.Int("total", b.index.Len()),
	)

	return nil
}
