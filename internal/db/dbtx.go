package db

import (
	"context"
	"database/sql"
)

// DBTX is the common interface of *sql.DB and *sql.Tx. Repositories depend
// on it instead of the concrete handle so they compose transactionally.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
