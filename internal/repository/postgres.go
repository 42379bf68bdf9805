package repository

import (
	"context"
	"fmt"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
)

// PostgresRepository stores identities in PostgreSQL.
// Check-and-insert atomicity comes from the UNIQUE constraint plus ON CONFLICT.
type PostgresRepository struct {
	pool PgxPool
}

func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS identities (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			embedding BYTEA NOT NULL
		)
	`

	if _, err := r.pool.Exec(ctx, query); err != nil {
		return unavailable("create identities table", err)
	}

	return nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]domain.Identity, error) {
	query := `
		SELECT name, embedding
		FROM identities
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		if isUndefinedTable(err) {
			return []domain.Identity{}, nil
		}
		return nil, unavailable("list identities", err)
	}
	defer rows.Close()

	identities := []domain.Identity{}
	for rows.Next() {
		var name string
		var raw []byte
		if err := rows.Scan(&name, &raw); err != nil {
			return nil, unavailable("scan identity", err)
		}

		embedding, err := domain.DecodeEmbedding(raw)
		if err != nil {
			return nil, fmt.Errorf("decode embedding for %q: %w", name, err)
		}

		identities = append(identities, domain.Identity{
			Name:      name,
			Embedding: embedding,
			Origin:    domain.OriginRepository,
		})
	}

	if err := rows.Err(); err != nil {
		if isUndefinedTable(err) {
			return []domain.Identity{}, nil
		}
		return nil, unavailable("iterate identities", err)
	}

	return identities, nil
}

func (r *PostgresRepository) InsertIfAbsent(ctx context.Context, name string, embedding []float64) (bool, error) {
	query := `
		INSERT INTO identities (name, embedding)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
	`

	result, err := r.pool.Exec(ctx, query, name, domain.EncodeEmbedding(embedding))
	if err != nil {
		return false, unavailable("insert identity", err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return unavailable("ping postgres", err)
	}
	return nil
}

func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

var _ IdentityRepository = (*PostgresRepository)(nil)
