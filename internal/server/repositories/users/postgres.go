// Package users provides account storage for the server.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fintrack/internal/common"
	"fintrack/internal/dbx"
	"fintrack/internal/server/models"
)

// PostgresRepository implements account storage over *sql.DB. Reads run on
// the plain connection; Create runs in a transaction.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the account inside a transaction, checking the username
// first so a taken name surfaces as ErrorAlreadyExists instead of a raw
// constraint error. The unique index still backs the check when two
// registrations race past the lookup.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	err := dbx.WithTx(ctx, r.db, func(tx dbx.DBTX) error {
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username = $1`, user.Username).Scan(&one)
		if err == nil {
			return common.ErrorAlreadyExists
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("db error: %w", err)
		}

		query := `
			INSERT INTO users (id, username, password_hash)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, query, user.ID, user.Username, user.PasswordHash); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "unique") {
				return common.ErrorAlreadyExists
			}
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash FROM users
		WHERE username = $1
	`
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
