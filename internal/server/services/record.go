package services

import (
	"context"

	"github.com/google/uuid"

	"fintrack/internal/common"
	"fintrack/internal/logging"
	"fintrack/internal/models"
	"fintrack/internal/server/repositories/records"
)

// RecordService enforces ownership and validation on top of record storage.
// Every method takes the authenticated caller's user id; records belonging to
// other users are indistinguishable from missing ones.
type RecordService struct {
	repo records.Repository
	log  logging.Logger
}

func NewRecordService(repo records.Repository, log logging.Logger) *RecordService {
	return &RecordService{repo: repo, log: log.With("component", "records")}
}

// ListByUser returns the caller's records. Requesting another user's list is
// refused outright rather than returning an empty slice.
func (s *RecordService) ListByUser(ctx context.Context, callerID, userID string) ([]models.Record, error) {
	if userID != callerID {
		return nil, common.ErrorUnauthorized
	}
	return s.repo.ListByUser(ctx, userID)
}

// Create persists a draft, assigning the id server-side. The draft's owner
// must be the caller.
func (s *RecordService) Create(ctx context.Context, callerID string, draft models.Record) (models.Record, error) {
	if draft.ID != "" {
		return models.Record{}, common.ErrorHasID
	}
	if err := draft.Validate(); err != nil {
		return models.Record{}, err
	}
	if draft.UserID != callerID {
		return models.Record{}, common.ErrorUnauthorized
	}

	draft.ID = uuid.NewString()
	created, err := s.repo.Create(ctx, draft)
	if err != nil {
		return models.Record{}, err
	}

	s.log.Info(ctx, "record created", "record_id", created.ID, "user_id", callerID)
	return created, nil
}

// Update replaces the stored record with rec. The ownership of the existing
// row is checked first; the owner cannot be reassigned.
func (s *RecordService) Update(ctx context.Context, callerID, id string, rec models.Record) (models.Record, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Record{}, err
	}
	if existing.UserID != callerID {
		return models.Record{}, common.ErrorNotFound
	}

	rec.ID = id
	rec.UserID = existing.UserID
	if err := rec.Validate(); err != nil {
		return models.Record{}, err
	}

	updated, err := s.repo.Update(ctx, rec)
	if err != nil {
		return models.Record{}, err
	}

	s.log.Info(ctx, "record updated", "record_id", id, "user_id", callerID)
	return updated, nil
}

// Delete removes the record and returns the removed row.
func (s *RecordService) Delete(ctx context.Context, callerID, id string) (models.Record, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Record{}, err
	}
	if existing.UserID != callerID {
		return models.Record{}, common.ErrorNotFound
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return models.Record{}, err
	}

	s.log.Info(ctx, "record deleted", "record_id", id, "user_id", callerID)
	return deleted, nil
}
