package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
)

// insertScript sets the hash field and records order only when the name is new.
// KEYS[1] = identities hash, KEYS[2] = order list, ARGV[1] = name, ARGV[2] = embedding
var insertScript = redis.NewScript(`
if redis.call('HSETNX', KEYS[1], ARGV[1], ARGV[2]) == 1 then
	redis.call('RPUSH', KEYS[2], ARGV[1])
	return 1
end
return 0
`)

// RedisRepository keeps embeddings in a hash and insertion order in a list.
type RedisRepository struct {
	client   redis.UniversalClient
	hashKey  string
	orderKey string
}

func NewRedisRepository(client redis.UniversalClient, prefix string) *RedisRepository {
	return &RedisRepository{
		client:   client,
		hashKey:  prefix + ":identities",
		orderKey: prefix + ":order",
	}
}

// NewRedisClient parses url and verifies the server answers
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, unavailable("redis ping", err)
	}

	return client, nil
}

// EnsureSchema only checks connectivity; keys are created on first insert
func (r *RedisRepository) EnsureSchema(ctx context.Context) error {
	return r.Ping(ctx)
}

func (r *RedisRepository) ListAll(ctx context.Context) ([]domain.Identity, error) {
	names, err := r.client.LRange(ctx, r.orderKey, 0, -1).Result()
	if err != nil {
		return nil, unavailable("list identity order", err)
	}
	if len(names) == 0 {
		return []domain.Identity{}, nil
	}

	values, err := r.client.HMGet(ctx, r.hashKey, names...).Result()
	if err != nil {
		return nil, unavailable("list identities", err)
	}

	identities := make([]domain.Identity, 0, len(names))
	for i, name := range names {
		raw, ok := values[i].(string)
		if !ok {
			// order entry without a hash field, skip it
			continue
		}

		embedding, err := domain.DecodeEmbedding([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("decode embedding for %q: %w", name, err)
		}

		identities = append(identities, domain.Identity{
			Name:      name,
			Embedding: embedding,
			Origin:    domain.OriginRepository,
		})
	}

	return identities, nil
}

func (r *RedisRepository) InsertIfAbsent(ctx context.Context, name string, embedding []float64) (bool, error) {
	inserted, err := insertScript.Run(ctx, r.client,
		[]string{r.hashKey, r.orderKey},
		name, domain.EncodeEmbedding(embedding),
	).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, unavailable("insert identity", err)
	}

	return inserted == 1, nil
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return unavailable("ping redis", err)
	}
	return nil
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

var _ IdentityRepository = (*RedisRepository)(nil)
