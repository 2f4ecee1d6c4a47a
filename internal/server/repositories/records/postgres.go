// Package records provides PostgreSQL-backed storage for financial records.
package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fintrack/internal/common"
	"fintrack/internal/dbx"
	"fintrack/internal/models"
)

// PostgresRepository implements record storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const recordColumns = "id, user_id, date, description, amount, category, payment_method"

func scanRecord(row *sql.Row) (models.Record, error) {
	var rec models.Record
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.Description, &rec.Amount, &rec.Category, &rec.PaymentMethod)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Record{}, common.ErrorNotFound
		}
		return models.Record{}, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

// ListByUser returns the user's records ordered by date, oldest first. The
// client renders rows in the order it receives them.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Record, error) {
	query := `
		SELECT ` + recordColumns + ` FROM financial_records
		WHERE user_id = $1
		ORDER BY date, id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Record
	for rows.Next() {
		var rec models.Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.Description, &rec.Amount, &rec.Category, &rec.PaymentMethod); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (models.Record, error) {
	query := `
		SELECT ` + recordColumns + ` FROM financial_records
		WHERE id = $1
	`
	return scanRecord(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) Create(ctx context.Context, rec models.Record) (models.Record, error) {
	query := `
		INSERT INTO financial_records (id, user_id, date, description, amount, category, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.UserID, rec.Date, rec.Description, rec.Amount, rec.Category, rec.PaymentMethod)
	if err != nil {
		return models.Record{}, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Update(ctx context.Context, rec models.Record) (models.Record, error) {
	query := `
		UPDATE financial_records
		SET date = $2, description = $3, amount = $4, category = $5, payment_method = $6
		WHERE id = $1
		RETURNING ` + recordColumns + `
	`
	return scanRecord(r.db.QueryRowContext(ctx, query,
		rec.ID, rec.Date, rec.Description, rec.Amount, rec.Category, rec.PaymentMethod))
}

// Delete removes the record and returns the removed row, so the handler can
// echo it back to the client.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (models.Record, error) {
	query := `
		DELETE FROM financial_records
		WHERE id = $1
		RETURNING ` + recordColumns + `
	`
	return scanRecord(r.db.QueryRowContext(ctx, query, id))
}
