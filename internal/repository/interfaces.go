package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
)

// IdentityRepository is the durable catalog of enrolled identities.
// Names are unique; the first write for a name wins.
type IdentityRepository interface {
	// EnsureSchema creates the catalog if absent. Safe on every startup.
	EnsureSchema(ctx context.Context) error
	// ListAll returns every stored identity in insertion order.
	// A catalog that does not exist yet yields an empty slice, not an error.
	ListAll(ctx context.Context) ([]domain.Identity, error)
	// InsertIfAbsent reports whether a row was written. A duplicate name
	// returns false with a nil error.
	InsertIfAbsent(ctx context.Context, name string, embedding []float64) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// PgxPool is the subset of *pgxpool.Pool used by PostgresRepository.
// pgxmock.PgxPoolIface satisfies it in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}
