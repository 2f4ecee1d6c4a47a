package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fintrack/internal/common"
	"fintrack/internal/logging"
	"fintrack/internal/models"
	"fintrack/internal/server/repositories/records"
)

func newRecordService() *RecordService {
	return NewRecordService(records.NewInMemoryRepository(), logging.NewDiscard())
}

func draft(userID, desc string) models.Record {
	return models.Record{
		UserID:        userID,
		Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Description:   desc,
		Amount:        12.5,
		Category:      "misc",
		PaymentMethod: "card",
	}
}

func TestCreate_AssignsID(t *testing.T) {
	s := newRecordService()
	ctx := context.Background()

	created, err := s.Create(ctx, "u1", draft("u1", "coffee"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "u1", created.UserID)

	got, err := s.ListByUser(ctx, "u1", "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, created, got[0])
}

func TestCreate_RejectsDraftWithID(t *testing.T) {
	s := newRecordService()

	d := draft("u1", "coffee")
	d.ID = "client-made-this-up"
	_, err := s.Create(context.Background(), "u1", d)
	require.ErrorIs(t, err, common.ErrorHasID)
}

func TestCreate_RejectsInvalidDraft(t *testing.T) {
	s := newRecordService()
	ctx := context.Background()

	_, err := s.Create(ctx, "u1", draft("u1", "  "))
	require.ErrorIs(t, err, common.ErrorEmptyDescription)

	_, err = s.Create(ctx, "u1", draft("", "coffee"))
	require.ErrorIs(t, err, common.ErrorNoUserID)
}

func TestCreate_RejectsForeignOwner(t *testing.T) {
	s := newRecordService()

	_, err := s.Create(context.Background(), "u1", draft("u2", "coffee"))
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestListByUser_RefusesForeignList(t *testing.T) {
	s := newRecordService()

	_, err := s.ListByUser(context.Background(), "u1", "u2")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestUpdate_ReplacesRecordAndKeepsOwner(t *testing.T) {
	s := newRecordService()
	ctx := context.Background()

	created, err := s.Create(ctx, "u1", draft("u1", "coffee"))
	require.NoError(t, err)

	edited := created
	edited.Description = "espresso"
	edited.UserID = "u2" // reassignment attempt is ignored
	updated, err := s.Update(ctx, "u1", created.ID, edited)
	require.NoError(t, err)
	require.Equal(t, "espresso", updated.Description)
	require.Equal(t, "u1", updated.UserID)
}

func TestUpdate_ForeignRecordLooksMissing(t *testing.T) {
	s := newRecordService()
	ctx := context.Background()

	created, err := s.Create(ctx, "u1", draft("u1", "coffee"))
	require.NoError(t, err)

	_, err = s.Update(ctx, "u2", created.ID, created)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete_ReturnsRemovedRecord(t *testing.T) {
	s := newRecordService()
	ctx := context.Background()

	created, err := s.Create(ctx, "u1", draft("u1", "coffee"))
	require.NoError(t, err)

	deleted, err := s.Delete(ctx, "u1", created.ID)
	require.NoError(t, err)
	require.Equal(t, created, deleted)

	got, err := s.ListByUser(ctx, "u1", "u1")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestDelete_MissingAndForeign(t *testing.T) {
	s := newRecordService()
	ctx := context.Background()

	_, err := s.Delete(ctx, "u1", "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)

	created, err := s.Create(ctx, "u1", draft("u1", "coffee"))
	require.NoError(t, err)

	_, err = s.Delete(ctx, "u2", created.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}
