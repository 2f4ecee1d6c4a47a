// Package api talks to the records service over its HTTP/JSON contract.
// The Client interface is what the rest of the client programs against;
// tests substitute fakes for it.
package api

import (
	"context"

	"fintrack/internal/models"
)

// Session identifies an authenticated user against the records service.
type Session struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

// Client is the remote records service as seen by the client core.
//
// All methods return an error for any non-success response; the in-memory
// state of callers must be left untouched when an error is returned.
type Client interface {
	Close() error

	// Register creates a new user account.
	Register(ctx context.Context, username, password string) error

	// Login exchanges credentials for a session. The implementation keeps the
	// session token and attaches it to subsequent record calls.
	Login(ctx context.Context, username, password string) (Session, error)

	// Ping probes service reachability.
	Ping(ctx context.Context) error

	// ListByUser fetches every record owned by userID, in server order.
	ListByUser(ctx context.Context, userID string) ([]models.Record, error)

	// Create persists a draft (empty ID) and returns the stored record with
	// its server-assigned ID.
	Create(ctx context.Context, draft models.Record) (models.Record, error)

	// Update replaces the record with the given id wholesale and returns the
	// stored result.
	Update(ctx context.Context, id string, rec models.Record) (models.Record, error)

	// Delete removes the record with the given id and returns the deleted
	// record (at least its ID) as reported by the server.
	Delete(ctx context.Context, id string) (models.Record, error)
}
