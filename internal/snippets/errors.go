package snippets

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/PabloPavan/snipmark_api/internal/search"
)

var (
	ErrNotFound = errors.New("snippet not found")
	ErrConflict = errors.New("snippet already exists")
)

// IsNotFound also covers ids rejected by the query compiler.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, search.ErrNotFound)
}

func IsConflict(err error) bool {
	if errors.Is(err, ErrConflict) {
		return true
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" { // unique_violation
		return false
	}
	return pgErr.ConstraintName == "snippets_pkey" || pgErr.ColumnName == "id"
}
