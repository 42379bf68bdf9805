package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
)

func TestPostgresRepository_EnsureSchema(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   bool
	}{
		{
			name: "creates table",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`CREATE TABLE IF NOT EXISTS identities`).
					WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
			},
		},
		{
			name: "database error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`CREATE TABLE IF NOT EXISTS identities`).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			err = NewPostgresRepository(mock).EnsureSchema(context.Background())
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_ListAll(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		want      []domain.Identity
		wantErr   error
	}{
		{
			name: "rows in id order",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"name", "embedding"}).
					AddRow("ana", domain.EncodeEmbedding([]float64{1, 2})).
					AddRow("bruno", domain.EncodeEmbedding([]float64{3, 4}))
				mock.ExpectQuery(`SELECT name, embedding FROM identities ORDER BY id`).
					WillReturnRows(rows)
			},
			want: []domain.Identity{
				{Name: "ana", Embedding: []float64{1, 2}, Origin: domain.OriginRepository},
				{Name: "bruno", Embedding: []float64{3, 4}, Origin: domain.OriginRepository},
			},
		},
		{
			name: "missing table is empty",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT name, embedding FROM identities`).
					WillReturnError(&pgconn.PgError{Code: "42P01", Message: `relation "identities" does not exist`})
			},
			want: []domain.Identity{},
		},
		{
			name: "connection failure",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT name, embedding FROM identities`).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: domain.ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			got, err := NewPostgresRepository(mock).ListAll(context.Background())
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_InsertIfAbsent(t *testing.T) {
	embedding := []float64{0.5, -0.5}

	tests := []struct {
		name         string
		mockSetup    func(mock pgxmock.PgxPoolIface)
		wantInserted bool
		wantErr      bool
	}{
		{
			name: "new name is inserted",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO identities \(name, embedding\) VALUES \(\$1, \$2\) ON CONFLICT \(name\) DO NOTHING`).
					WithArgs("ana", domain.EncodeEmbedding(embedding)).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
			wantInserted: true,
		},
		{
			name: "existing name is ignored",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO identities`).
					WithArgs("ana", domain.EncodeEmbedding(embedding)).
					WillReturnResult(pgxmock.NewResult("INSERT", 0))
			},
			wantInserted: false,
		},
		{
			name: "database error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO identities`).
					WithArgs("ana", domain.EncodeEmbedding(embedding)).
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			inserted, err := NewPostgresRepository(mock).InsertIfAbsent(context.Background(), "ana", embedding)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
				assert.Contains(t, err.Error(), "insert identity")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantInserted, inserted)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_Ping(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("down"))

	repo := NewPostgresRepository(mock)
	assert.NoError(t, repo.Ping(context.Background()))
	assert.ErrorIs(t, repo.Ping(context.Background()), domain.ErrStorageUnavailable)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUndefinedTable(t *testing.T) {
	assert.True(t, isUndefinedTable(&pgconn.PgError{Code: "42P01"}))
	assert.True(t, isUndefinedTable(errors.New("sqlite.Conn.Prepare: SQLITE_ERROR: no such table: identities")))
	assert.False(t, isUndefinedTable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUndefinedTable(errors.New("connection refused")))
	assert.False(t, isUndefinedTable(nil))
}
