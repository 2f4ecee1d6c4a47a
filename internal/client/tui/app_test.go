package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"fintrack/internal/client/api"
	"fintrack/internal/client/identity"
	"fintrack/internal/client/records"
	"fintrack/internal/logging"
	"fintrack/internal/models"
)

type fakeClient struct {
	api.Client

	records []models.Record
	updated []models.Record
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (api.Session, error) {
	return api.Session{UserID: "u1", Token: "t"}, nil
}

func (f *fakeClient) ListByUser(ctx context.Context, userID string) ([]models.Record, error) {
	return f.records, nil
}

func (f *fakeClient) Update(ctx context.Context, id string, rec models.Record) (models.Record, error) {
	f.updated = append(f.updated, rec)
	return rec, nil
}

func newTestApp(t *testing.T, fc *fakeClient) *App {
	t.Helper()
	log := logging.NewDiscard()
	ident := identity.NewManager(fc, log)
	store := records.NewStore(fc, log)
	a := New(context.Background(), fc, ident, store, log)
	t.Cleanup(a.Close)
	return a
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAuthView_TypesIntoFocusedField(t *testing.T) {
	a := newTestApp(t, &fakeClient{})

	a.Update(keyRunes("alice"))
	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a.Update(keyRunes("secret"))

	require.Equal(t, "alice", a.username)
	require.Equal(t, "secret", a.password)
}

func TestAuthView_EnterWithEmptyFieldsDoesNotSubmit(t *testing.T) {
	a := newTestApp(t, &fakeClient{})

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.Equal(t, "enter a username and password", a.status)
}

func TestAuthView_SignInSwitchesToRecordsView(t *testing.T) {
	a := newTestApp(t, &fakeClient{})

	a.Update(keyRunes("alice"))
	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a.Update(keyRunes("secret"))
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	a.Update(cmd())
	require.Equal(t, viewRecords, a.state)
	require.Empty(t, a.password)
}

func TestEditFlow_EnterActivatesTypingEditsBuffer(t *testing.T) {
	fc := &fakeClient{records: []models.Record{{
		ID: "a", UserID: "u1", Date: time.Now(), Description: "old", Amount: 5,
	}}}
	a := newTestApp(t, fc)
	a.state = viewRecords
	require.NoError(t, a.store.Load(context.Background(), "u1"))

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, _, editing := a.controller.Editing()
	require.True(t, editing)
	require.Equal(t, "old", a.controller.Buffer())

	a.Update(keyRunes("er"))
	require.Equal(t, "older", a.controller.Buffer())

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	a.Update(cmd())

	require.Len(t, fc.updated, 1)
	require.Equal(t, "older", fc.updated[0].Description)
}

// The edit state transition must finish inside Update; the returned command
// only talks to the store. Rendering while the save is in flight must not
// touch state the command still writes.
func TestEditCommit_RenderSafeWhileSaveInFlight(t *testing.T) {
	fc := &fakeClient{records: []models.Record{{
		ID: "a", UserID: "u1", Date: time.Now(), Description: "old", Amount: 5,
	}}}
	a := newTestApp(t, fc)
	a.state = viewRecords
	require.NoError(t, a.store.Load(context.Background(), "u1"))

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a.Update(keyRunes("er"))
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	_, _, editing := a.controller.Editing()
	require.False(t, editing, "edit mode must end before the save command runs")

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	for i := 0; i < 100; i++ {
		_ = a.View()
	}
	a.Update(<-done)

	require.Len(t, fc.updated, 1)
	require.Equal(t, "older", fc.updated[0].Description)
	require.Equal(t, "saved", a.status)
}

func TestAddForm_CollectsDraft(t *testing.T) {
	a := newTestApp(t, &fakeClient{})
	a.state = viewRecords

	a.Update(keyRunes("a"))
	require.True(t, a.adding)

	a.Update(keyRunes("coffee"))
	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a.Update(keyRunes("-3.5"))
	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a.Update(keyRunes("food"))
	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a.Update(keyRunes("card"))

	draft, err := a.draftFromForm()
	require.NoError(t, err)
	require.Equal(t, "coffee", draft.Description)
	require.InDelta(t, -3.5, draft.Amount, 1e-9)
	require.Equal(t, "food", draft.Category)
	require.Equal(t, "card", draft.PaymentMethod)
}

func TestAddForm_BadAmountKeepsForm(t *testing.T) {
	a := newTestApp(t, &fakeClient{})
	a.state = viewRecords

	a.Update(keyRunes("a"))
	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a.Update(keyRunes("not-a-number"))

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.True(t, a.adding)
	require.Contains(t, a.status, "error")
}
