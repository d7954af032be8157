// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"context"
	"database/sql"
)

// Querier is the store handle every repository is constructed with.
// *sql.DB and the circuit-breaker wrapper both satisfy it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// queryOne runs query and scans its first row. No row yields sql.ErrNoRows.
// Single-row reads go through QueryContext so that a guarded handle can
// refuse the statement before it reaches the store.
func queryOne(ctx context.Context, db Querier, scan func(rowScanner) error, query string, args ...any) error {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return sql.ErrNoRows
	}
	if err := scan(rows); err != nil {
		return err
	}
	return rows.Err()
}
