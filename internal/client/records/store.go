// Package records holds the client-side source of truth for the signed-in
// user's financial records.
//
// The store keeps one in-memory snapshot and brokers every mutation through
// the remote records service. Mutations are confirmation-gated: nothing is
// inserted, replaced, or removed locally until the server has acknowledged
// the call, so a failed call always leaves the snapshot exactly as it was.
// Errors are returned to the caller, which decides whether to surface them.
package records

import (
	"context"
	"sync"

	"fintrack/internal/client/api"
	"fintrack/internal/common"
	"fintrack/internal/logging"
	"fintrack/internal/models"
)

// Store owns the snapshot of the current user's records.
//
// Operations may be issued concurrently; each one mutates the snapshot
// atomically and independently of other in-flight calls. Two updates to the
// same record issued before either resolves are applied in completion order,
// so the response that arrives last wins regardless of issue order. List
// loads are sequenced by a generation counter: a load that resolves after the
// identity has changed again is discarded, never spliced into the snapshot of
// a different user.
type Store struct {
	client api.Client
	log    logging.Logger

	mu      sync.Mutex
	userID  string
	records []models.Record
	loadGen uint64

	subMu   sync.Mutex
	nextSub int
	subs    map[int]func()
}

// NewStore builds an empty store. The snapshot stays empty until the first
// Load.
func NewStore(client api.Client, log logging.Logger) *Store {
	return &Store{
		client: client,
		log:    log.With("component", "records"),
		subs:   make(map[int]func()),
	}
}

// Subscribe registers fn to run after every snapshot change. The returned
// function cancels the subscription. Callbacks run outside the store lock and
// must use Records to read the new state.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// User returns the identity the snapshot currently belongs to, or "" when
// nobody is signed in.
func (s *Store) User() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Records returns a copy of the snapshot in arrival order: load order first,
// then append order for created records.
func (s *Store) Records() []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Record(nil), s.records...)
}

// Load makes userID the current identity and replaces the snapshot wholesale
// with that user's records, preserving server order.
//
// An empty userID signs the user out: the snapshot is cleared immediately and
// no request is issued. On a fetch failure the previous snapshot is left
// untouched and the error is returned. When the identity changes again while
// a load is still in flight, the late response is dropped.
func (s *Store) Load(ctx context.Context, userID string) error {
	s.mu.Lock()
	s.loadGen++
	gen := s.loadGen
	s.userID = userID
	if userID == "" {
		s.records = nil
		s.mu.Unlock()
		s.notify()
		return nil
	}
	s.mu.Unlock()

	list, err := s.client.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error(ctx, "load records failed", "user_id", userID, "error", err)
		return err
	}

	s.mu.Lock()
	if s.loadGen != gen {
		s.mu.Unlock()
		s.log.Debug(ctx, "discarding stale record load", "user_id", userID)
		return nil
	}
	s.records = append([]models.Record(nil), list...)
	s.mu.Unlock()

	s.notify()
	return nil
}

// Add persists a draft record and appends the server's result to the
// snapshot. The draft must not carry an ID; the snapshot reflects the new
// record only after the server confirms it, under its server-assigned ID.
func (s *Store) Add(ctx context.Context, draft models.Record) (models.Record, error) {
	if draft.ID != "" {
		return models.Record{}, common.ErrorHasID
	}

	created, err := s.client.Create(ctx, draft)
	if err != nil {
		s.log.Error(ctx, "create record failed", "error", err)
		return models.Record{}, err
	}

	s.mu.Lock()
	if created.UserID != s.userID {
		// Identity changed while the create was in flight; the record is
		// persisted but does not belong in this snapshot.
		s.mu.Unlock()
		s.log.Warn(ctx, "dropping created record for previous user", "record_id", created.ID)
		return created, nil
	}
	s.records = append(s.records, created)
	s.mu.Unlock()

	s.notify()
	return created, nil
}

// Update sends a full replacement for the record with the given id and, on
// success, swaps the server's result into the snapshot in place, keeping the
// entry's position. A response for an id no longer present is dropped.
//
// An empty id is passed through; the server rejects it.
func (s *Store) Update(ctx context.Context, id string, rec models.Record) (models.Record, error) {
	updated, err := s.client.Update(ctx, id, rec)
	if err != nil {
		s.log.Error(ctx, "update record failed", "record_id", id, "error", err)
		return models.Record{}, err
	}

	replaced := false
	s.mu.Lock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i] = updated
			replaced = true
			break
		}
	}
	s.mu.Unlock()

	if replaced {
		s.notify()
	}
	return updated, nil
}

// Delete removes the record with the given id. The snapshot entry is matched
// by the ID the server reports in its response, so the operation is robust to
// the service returning a canonical identifier.
func (s *Store) Delete(ctx context.Context, id string) (models.Record, error) {
	deleted, err := s.client.Delete(ctx, id)
	if err != nil {
		s.log.Error(ctx, "delete record failed", "record_id", id, "error", err)
		return models.Record{}, err
	}

	removed := false
	s.mu.Lock()
	for i := range s.records {
		if s.records[i].ID == deleted.ID {
			s.records = append(s.records[:i], s.records[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.notify()
	}
	return deleted, nil
}
