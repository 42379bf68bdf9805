package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"crawshaw.io/sqlite"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
)

const (
	sqliteCreateTable = `
	CREATE TABLE IF NOT EXISTS identities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		embedding BLOB NOT NULL
	);`

	sqliteSelectAll = `SELECT name, embedding FROM identities ORDER BY id;`

	sqliteInsertIgnore = `INSERT OR IGNORE INTO identities (name, embedding) VALUES (?, ?);`
)

var errClosed = errors.New("repository is closed")

// SQLiteRepository stores identities in an embedded SQLite file.
// A single connection is shared; every call is a short critical section under mu.
type SQLiteRepository struct {
	mu   sync.Mutex
	conn *sqlite.Conn
}

// NewSQLiteRepository opens (creating if needed) the database at path.
// ":memory:" gives a private in-memory database.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	conn, err := sqlite.OpenConn(path, sqlite.SQLITE_OPEN_CREATE|sqlite.SQLITE_OPEN_READWRITE)
	if err != nil {
		return nil, unavailable("open sqlite database", err)
	}

	return &SQLiteRepository{conn: conn}, nil
}

// acquire locks the connection and makes statements abort when ctx is done.
// The returned func restores the previous interrupt channel and unlocks.
func (r *SQLiteRepository) acquire(ctx context.Context) (func(), error) {
	r.mu.Lock()
	if r.conn == nil {
		r.mu.Unlock()
		return nil, unavailable("sqlite", errClosed)
	}

	prev := r.conn.SetInterrupt(ctx.Done())
	return func() {
		r.conn.SetInterrupt(prev)
		r.mu.Unlock()
	}, nil
}

func (r *SQLiteRepository) EnsureSchema(ctx context.Context) error {
	release, err := r.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	stmt, err := r.conn.Prepare(sqliteCreateTable)
	if err != nil {
		return unavailable("prepare create table", err)
	}
	defer stmt.Reset()

	if _, err := stmt.Step(); err != nil {
		return unavailable("create identities table", err)
	}

	return nil
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]domain.Identity, error) {
	release, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	stmt, err := r.conn.Prepare(sqliteSelectAll)
	if err != nil {
		if isUndefinedTable(err) {
			return []domain.Identity{}, nil
		}
		return nil, unavailable("prepare list identities", err)
	}
	defer stmt.Reset()

	identities := []domain.Identity{}
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, unavailable("list identities", err)
		}
		if !hasRow {
			break
		}

		name := stmt.ColumnText(0)
		raw := make([]byte, stmt.ColumnLen(1))
		stmt.ColumnBytes(1, raw)

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

	return identities, nil
}

func (r *SQLiteRepository) InsertIfAbsent(ctx context.Context, name string, embedding []float64) (bool, error) {
	release, err := r.acquire(ctx)
	if err != nil {
		return false, err
	}
	defer release()

	stmt, err := r.conn.Prepare(sqliteInsertIgnore)
	if err != nil {
		return false, unavailable("prepare insert identity", err)
	}
	defer stmt.Reset()

	stmt.BindText(1, name)
	stmt.BindBytes(2, domain.EncodeEmbedding(embedding))

	if _, err := stmt.Step(); err != nil {
		return false, unavailable("insert identity", err)
	}

	return r.conn.Changes() == 1, nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	release, err := r.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	stmt, err := r.conn.Prepare(`SELECT 1;`)
	if err != nil {
		return unavailable("ping sqlite", err)
	}
	defer stmt.Reset()

	if _, err := stmt.Step(); err != nil {
		return unavailable("ping sqlite", err)
	}

	return nil
}

func (r *SQLiteRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil {
		return nil
	}
	err := r.conn.Close()
	r.conn = nil
	return err
}

var _ IdentityRepository = (*SQLiteRepository)(nil)
