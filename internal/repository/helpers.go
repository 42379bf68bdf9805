package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
)

const pgUndefinedTable = "42P01"

// isUndefinedTable checks if the error means the catalog table does not exist yet
func isUndefinedTable(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable
	}

	// SQLite reports it only in the message
	return strings.Contains(strings.ToLower(err.Error()), "no such table")
}

// unavailable wraps an infrastructure failure as ErrStorageUnavailable
func unavailable(op string, err error) error {
	return domain.ErrStorageUnavailable.WithError(fmt.Errorf("%s: %w", op, err))
}
