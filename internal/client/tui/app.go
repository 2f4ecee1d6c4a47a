// Package tui is the terminal frontend. One bubbletea model drives two
// views: the auth form and the records table. All network work happens in
// tea commands so the event loop never blocks.
package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"fintrack/internal/client/api"
	"fintrack/internal/client/identity"
	"fintrack/internal/client/records"
	"fintrack/internal/client/table"
	"fintrack/internal/logging"
	"fintrack/internal/models"
)

type appState string

const (
	viewAuth    appState = "auth"
	viewRecords appState = "records"
)

type authMode string

const (
	authSignIn   authMode = "sign in"
	authRegister authMode = "register"
)

type authField int

const (
	fieldUsername authField = iota
	fieldPassword
)

// addField indexes the inputs of the new-record form, in display order.
type addField int

const (
	addDescription addField = iota
	addAmount
	addCategory
	addPaymentMethod
	addFieldCount
)

// onlineCheckInterval is how often the app probes service reachability.
const onlineCheckInterval = 10 * time.Second

// App ties the identity manager, the record store and the table controller
// to the terminal. Store and identity changes arrive through channels so
// they surface as messages inside the event loop.
type App struct {
	ctx        context.Context
	client     api.Client
	identity   *identity.Manager
	store      *records.Store
	controller *table.Controller
	log        logging.Logger

	state  appState
	online bool

	// auth form
	authMode authMode
	field    authField
	username string
	password string

	// table navigation
	cursorRow int
	cursorCol int

	// new-record form
	adding    bool
	addFocus  addField
	addInputs [addFieldCount]string

	status string

	identityCh chan string
	changedCh  chan struct{}

	cancelIdentity func()
	cancelStore    func()
}

func New(ctx context.Context, client api.Client, ident *identity.Manager, store *records.Store, log logging.Logger) *App {
	a := &App{
		ctx:        ctx,
		client:     client,
		identity:   ident,
		store:      store,
		controller: table.NewController(store),
		log:        log.With("component", "tui"),
		state:      viewAuth,
		authMode:   authSignIn,
		identityCh: make(chan string, 8),
		changedCh:  make(chan struct{}, 1),
	}
	a.cancelIdentity = ident.OnChange(func(userID string) {
		a.identityCh <- userID
	})
	a.cancelStore = store.Subscribe(func() {
		select {
		case a.changedCh <- struct{}{}:
		default:
		}
	})
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.waitIdentity(), a.waitStoreChange(), a.pingCmd())
}

// messages

type identityChangedMsg string

type storeChangedMsg struct{}

type signedInMsg struct{ userID string }

type registeredMsg struct{ username string }

type recordsLoadedMsg struct{ userID string }

type statusMsg string

type errMsg struct{ error }

type pingMsg struct{ err error }

type pingTickMsg struct{}

// commands

func (a *App) waitIdentity() tea.Cmd {
	return func() tea.Msg {
		return identityChangedMsg(<-a.identityCh)
	}
}

func (a *App) waitStoreChange() tea.Cmd {
	return func() tea.Msg {
		<-a.changedCh
		return storeChangedMsg{}
	}
}

func (a *App) pingCmd() tea.Cmd {
	return func() tea.Msg {
		return pingMsg{err: a.client.Ping(a.ctx)}
	}
}

func (a *App) signInCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		session, err := a.identity.SignIn(a.ctx, username, password)
		if err != nil {
			return errMsg{err}
		}
		return signedInMsg{userID: session.UserID}
	}
}

func (a *App) registerCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		if err := a.identity.Register(a.ctx, username, password); err != nil {
			return errMsg{err}
		}
		return registeredMsg{username: username}
	}
}

// loadRecordsCmd runs at the identity boundary: every published identity
// change reloads the snapshot for the new user, sign-out included.
func (a *App) loadRecordsCmd(userID string) tea.Cmd {
	return func() tea.Msg {
		if err := a.store.Load(a.ctx, userID); err != nil {
			return errMsg{err}
		}
		return recordsLoadedMsg{userID: userID}
	}
}

func (a *App) addRecordCmd(draft models.Record) tea.Cmd {
	return func() tea.Msg {
		if _, err := a.store.Add(a.ctx, draft); err != nil {
			return errMsg{err}
		}
		return statusMsg("record added")
	}
}

func (a *App) updateRecordCmd(rec models.Record) tea.Cmd {
	return func() tea.Msg {
		if _, err := a.store.Update(a.ctx, rec.ID, rec); err != nil {
			return errMsg{err}
		}
		return statusMsg("saved")
	}
}

func (a *App) deleteRowCmd(row int) tea.Cmd {
	return func() tea.Msg {
		if _, err := a.controller.DeleteRow(a.ctx, row); err != nil {
			return errMsg{err}
		}
		return statusMsg("record deleted")
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.state == viewAuth {
			return a.handleAuthKey(m)
		}
		if a.adding {
			return a.handleAddKey(m)
		}
		if _, _, editing := a.controller.Editing(); editing {
			return a.handleEditKey(m)
		}
		return a.handleTableKey(m)

	case identityChangedMsg:
		return a, tea.Batch(a.loadRecordsCmd(string(m)), a.waitIdentity())

	case storeChangedMsg:
		a.clampCursor()
		return a, a.waitStoreChange()

	case signedInMsg:
		a.state = viewRecords
		a.password = ""
		a.status = "signed in as " + a.username
		return a, nil

	case registeredMsg:
		a.authMode = authSignIn
		a.password = ""
		a.status = "registered " + m.username + ", sign in to continue"
		return a, nil

	case recordsLoadedMsg:
		a.clampCursor()
		return a, nil

	case statusMsg:
		a.status = string(m)
		return a, nil

	case errMsg:
		a.status = "error: " + m.Error()
		return a, nil

	case pingMsg:
		a.online = m.err == nil
		return a, tea.Tick(onlineCheckInterval, func(time.Time) tea.Msg { return pingTickMsg{} })

	case pingTickMsg:
		return a, a.pingCmd()
	}
	return a, nil
}

func (a *App) handleAuthKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "ctrl+r":
		if a.authMode == authSignIn {
			a.authMode = authRegister
		} else {
			a.authMode = authSignIn
		}
		a.status = ""
		return a, nil
	}
	switch m.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		if a.field == fieldUsername {
			a.field = fieldPassword
		} else {
			a.field = fieldUsername
		}
	case tea.KeyEnter:
		username := strings.TrimSpace(a.username)
		if username == "" || a.password == "" {
			a.status = "enter a username and password"
			return a, nil
		}
		if a.authMode == authRegister {
			a.status = "registering..."
			return a, a.registerCmd(username, a.password)
		}
		a.status = "signing in..."
		return a, a.signInCmd(username, a.password)
	case tea.KeyBackspace, tea.KeyCtrlH:
		if a.field == fieldUsername && len(a.username) > 0 {
			a.username = a.username[:len(a.username)-1]
		}
		if a.field == fieldPassword && len(a.password) > 0 {
			a.password = a.password[:len(a.password)-1]
		}
	case tea.KeySpace:
		if a.field == fieldPassword {
			a.password += " "
		}
	case tea.KeyRunes:
		if a.field == fieldUsername {
			a.username += string(m.Runes)
		} else {
			a.password += string(m.Runes)
		}
	}
	return a, nil
}

func (a *App) handleTableKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "ctrl+l":
		a.state = viewAuth
		a.username = ""
		a.password = ""
		a.field = fieldUsername
		a.status = "signed out"
		a.identity.SignOut(a.ctx)
		return a, nil
	case "up", "k":
		if a.cursorRow > 0 {
			a.cursorRow--
		}
	case "down", "j":
		if a.cursorRow < len(a.store.Records())-1 {
			a.cursorRow++
		}
	case "left", "h":
		if a.cursorCol > 0 {
			a.cursorCol--
		}
	case "right", "l":
		if a.cursorCol < len(table.Columns)-1 {
			a.cursorCol++
		}
	case "enter":
		col := table.Columns[a.cursorCol]
		if err := a.controller.Activate(a.cursorRow, col); err != nil {
			a.status = "error: " + err.Error()
			return a, nil
		}
		a.status = ""
	case "x":
		if len(a.store.Records()) == 0 {
			return a, nil
		}
		return a, a.deleteRowCmd(a.cursorRow)
	case "a":
		a.adding = true
		a.addFocus = addDescription
		a.addInputs = [addFieldCount]string{}
		a.status = ""
	case "r":
		return a, a.loadRecordsCmd(a.identity.Current())
	}
	return a, nil
}

func (a *App) handleEditKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	}
	switch m.Type {
	case tea.KeyEnter, tea.KeyEsc, tea.KeyTab:
		// Leaving the cell commits whatever is buffered. The controller's
		// state transition happens here on the loop; only the store call
		// runs in the command.
		updated, ok, err := a.controller.Commit()
		if err != nil {
			a.status = "error: " + err.Error()
			return a, nil
		}
		if !ok {
			return a, nil
		}
		return a, a.updateRecordCmd(updated)
	case tea.KeyBackspace, tea.KeyCtrlH:
		a.controller.Backspace()
	case tea.KeySpace:
		a.controller.Input(" ")
	case tea.KeyRunes:
		a.controller.Input(string(m.Runes))
	}
	return a, nil
}

func (a *App) handleAddKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	}
	switch m.Type {
	case tea.KeyEsc:
		a.adding = false
		a.status = ""
	case tea.KeyTab, tea.KeyDown:
		a.addFocus = (a.addFocus + 1) % addFieldCount
	case tea.KeyShiftTab, tea.KeyUp:
		a.addFocus = (a.addFocus + addFieldCount - 1) % addFieldCount
	case tea.KeyEnter:
		draft, err := a.draftFromForm()
		if err != nil {
			a.status = "error: " + err.Error()
			return a, nil
		}
		a.adding = false
		return a, a.addRecordCmd(draft)
	case tea.KeyBackspace, tea.KeyCtrlH:
		if s := a.addInputs[a.addFocus]; len(s) > 0 {
			a.addInputs[a.addFocus] = s[:len(s)-1]
		}
	case tea.KeySpace:
		a.addInputs[a.addFocus] += " "
	case tea.KeyRunes:
		a.addInputs[a.addFocus] += string(m.Runes)
	}
	return a, nil
}

// draftFromForm validates the new-record form and produces the draft sent to
// the store. The date is stamped client-side at submit time.
func (a *App) draftFromForm() (models.Record, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(a.addInputs[addAmount]), 64)
	if err != nil {
		return models.Record{}, err
	}
	return models.Record{
		UserID:        a.identity.Current(),
		Date:          time.Now().UTC(),
		Description:   strings.TrimSpace(a.addInputs[addDescription]),
		Amount:        amount,
		Category:      strings.TrimSpace(a.addInputs[addCategory]),
		PaymentMethod: strings.TrimSpace(a.addInputs[addPaymentMethod]),
	}, nil
}

func (a *App) clampCursor() {
	if n := len(a.store.Records()); a.cursorRow >= n {
		a.cursorRow = 0
	}
}

// Close drops the identity and store subscriptions.
func (a *App) Close() {
	a.cancelIdentity()
	a.cancelStore()
}

// Run blocks until the user quits.
func (a *App) Run() error {
	defer a.Close()
	_, err := tea.NewProgram(a).Run()
	return err
}
