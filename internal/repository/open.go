package repository

import (
	"context"
	"fmt"

	"github.com/saturnino-fabrica-de-software/aivi/internal/config"
	"github.com/saturnino-fabrica-de-software/aivi/internal/database"
)

// Open builds the repository selected by cfg.StorageDriver
func Open(ctx context.Context, cfg *config.Config) (IdentityRepository, error) {
	switch cfg.StorageDriver {
	case config.StorageSQLite, "":
		repo, err := NewSQLiteRepository(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return repo, nil

	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, database.DefaultPoolConfig(cfg.DatabaseURL))
		if err != nil {
			return nil, unavailable("connect postgres", err)
		}
		return NewPostgresRepository(pool), nil

	case config.StorageRedis:
		client, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return NewRedisRepository(client, cfg.RedisKeyPrefix), nil

	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}
}
