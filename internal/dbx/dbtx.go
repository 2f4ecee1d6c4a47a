// Package dbx holds the small database/sql plumbing the server repositories
// share.
package dbx

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the query surface the repositories are written against. Both
// *sql.DB and *sql.Tx satisfy it, so a repository method can run standalone
// or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction on db. The transaction commits when fn
// returns nil and rolls back when it returns an error or panics; panics are
// rethrown after the rollback.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx DBTX) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
