package users

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"fintrack/internal/common"
	"fintrack/internal/server/models"
)

// The queries are portable enough to run against an in-memory sqlite, which
// keeps these tests hermetic.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(2)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`)
	require.NoError(t, err)
	return db
}

func TestPostgresCreate_RoundTrip(t *testing.T) {
	repo := NewPostgresRepository(openTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.User{ID: "u1", Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	require.Equal(t, "u1", created.ID)

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "u1", got.ID)
	require.Equal(t, "h", got.PasswordHash)

	_, err = repo.GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresCreate_DuplicateUsername(t *testing.T) {
	repo := NewPostgresRepository(openTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{ID: "u1", Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{ID: "u2", Username: "alice", PasswordHash: "h2"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	// The rejected insert must not leave anything behind.
	var n int
	require.NoError(t, repo.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	require.Equal(t, 1, n)
}
