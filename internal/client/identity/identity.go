// Package identity tracks the signed-in user on the client.
//
// The manager is the single place that decides who the current identity is.
// Consumers subscribe to changes and react at the boundary; in particular the
// record store is told to load explicitly with the new user id rather than
// observing ambient session state itself.
package identity

import (
	"context"
	"sync"

	"fintrack/internal/client/api"
	"fintrack/internal/logging"
)

// Manager authenticates against the records service and publishes identity
// changes. An empty user id means nobody is signed in.
type Manager struct {
	client api.Client
	log    logging.Logger

	mu       sync.Mutex
	user     string
	nextSub  int
	onChange map[int]func(userID string)
}

func NewManager(client api.Client, log logging.Logger) *Manager {
	return &Manager{
		client:   client,
		log:      log.With("component", "identity"),
		onChange: make(map[int]func(string)),
	}
}

// Current returns the signed-in user's id, or "" when signed out.
func (m *Manager) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// OnChange registers fn to run with the new user id after every identity
// change, sign-out included. The returned function cancels the subscription.
func (m *Manager) OnChange(fn func(userID string)) (cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.onChange[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.onChange, id)
	}
}

func (m *Manager) setUser(ctx context.Context, userID string) {
	m.mu.Lock()
	m.user = userID
	fns := make([]func(string), 0, len(m.onChange))
	for _, fn := range m.onChange {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	m.log.Info(ctx, "identity changed", "user_id", userID)
	for _, fn := range fns {
		fn(userID)
	}
}

// Register creates an account. It does not sign the user in.
func (m *Manager) Register(ctx context.Context, username, password string) error {
	return m.client.Register(ctx, username, password)
}

// SignIn exchanges credentials for a session and publishes the new identity.
func (m *Manager) SignIn(ctx context.Context, username, password string) (api.Session, error) {
	session, err := m.client.Login(ctx, username, password)
	if err != nil {
		m.log.Error(ctx, "sign-in failed", "username", username, "error", err)
		return api.Session{}, err
	}
	m.setUser(ctx, session.UserID)
	return session, nil
}

// SignOut clears the identity and publishes the change.
func (m *Manager) SignOut(ctx context.Context) {
	m.setUser(ctx, "")
}
