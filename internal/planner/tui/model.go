// Package tui renders the planner widget: a launcher with a one-time
// attention nudge and the five-step inquiry wizard. The Model owns the
// wizard Machine and mirrors every draft mutation to the durable store.
package tui

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tiertech/blueprint/internal/planner/catalog"
	"github.com/tiertech/blueprint/internal/planner/config"
	"github.com/tiertech/blueprint/internal/planner/draft"
	"github.com/tiertech/blueprint/internal/planner/store"
	"github.com/tiertech/blueprint/internal/planner/transport"
	"github.com/tiertech/blueprint/internal/planner/wizard"
)

// nudgeWindow is how long the launcher emphasis runs before the session
// flag is set.
const nudgeWindow = 5 * time.Second

type sendResultMsg struct{ err error }

type nudgeDoneMsg struct{}

type Model struct {
	machine wizard.Machine
	keys    keyMap
	cfg     config.Config
	client  *transport.Client
	db      *sql.DB
	session string

	cursor    int
	message   textarea.Model
	email     textinput.Model
	name      textinput.Model
	focusName bool
	nudging   bool
	width     int
	height    int
}

// New builds the widget from config. The durable mirror is best-effort: when
// it cannot be opened the widget still runs, just without persistence.
func New(cfg config.Config) Model {
	db, err := store.Open(cfg.StatePath)
	if err == nil {
		if err := store.Migrate(db); err != nil {
			_ = db.Close()
			db = nil
		}
	} else {
		db = nil
	}
	client := transport.NewClient(cfg.Endpoint, transport.WithSite(cfg.Site))
	return newModel(cfg, db, client)
}

func newModel(cfg config.Config, db *sql.DB, client *transport.Client) Model {
	d := draft.New()
	if db != nil {
		d = store.LoadDraft(db)
	}

	ta := textarea.New()
	ta.Placeholder = "Example: A web app for onboarding that standardizes data capture and cuts manual steps."
	ta.CharLimit = draft.MaxMessageLen
	ta.ShowLineNumbers = false
	ta.SetHeight(5)
	// Enter advances the wizard; newlines go in with ctrl+j.
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("ctrl+j"))

	em := textinput.New()
	em.Placeholder = "you@company.com"
	em.CharLimit = 254

	nm := textinput.New()
	nm.Placeholder = "Your name"
	nm.CharLimit = 120

	m := Model{
		machine: wizard.New(d),
		keys:    defaultKeys(),
		cfg:     cfg,
		client:  client,
		db:      db,
		session: newSessionID(),
		message: ta,
		email:   em,
		name:    nm,
	}
	m.nudging = db == nil || !store.NudgeShown(db, m.session)
	return m
}

func newSessionID() string {
	return fmt.Sprintf("%d-%d", os.Getpid(), time.Now().UnixNano())
}

func (m Model) Init() tea.Cmd {
	if !m.nudging {
		return nil
	}
	return tea.Tick(nudgeWindow, func(time.Time) tea.Msg { return nudgeDoneMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.machine.Draft
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		w := msg.Width - 8
		if w > 60 {
			w = 60
		}
		if w > 10 {
			m.message.SetWidth(w)
			m.email.Width = w
			m.name.Width = w
		}
	case nudgeDoneMsg:
		m.nudging = false
		if m.db != nil {
			_ = store.MarkNudgeShown(m.db, m.session)
		}
	case sendResultMsg:
		if msg.err != nil {
			m.machine = m.machine.SendFailed(msg.err.Error())
		} else {
			m.machine = m.machine.SendSucceeded()
		}
	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)
	}

	// Mutate then persist: the mirror always reflects the draft the user saw.
	if m.db != nil && !reflect.DeepEqual(before, m.machine.Draft) {
		_ = store.SaveDraft(m.db, m.machine.Draft)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if !m.machine.Open {
		switch {
		case key.Matches(msg, m.keys.Open):
			m.machine = m.machine.Launch()
			m.syncInputs()
		case msg.String() == "q":
			return m, tea.Quit
		}
		return m, nil
	}
	if key.Matches(msg, m.keys.Close) {
		m.machine = m.machine.Escape()
		return m, nil
	}
	if key.Matches(msg, m.keys.Reset) {
		m.machine = m.machine.Reset()
		m.cursor = 0
		m.syncInputs()
		return m, nil
	}

	switch m.machine.Step {
	case wizard.StepReason:
		return m.handleReasonKey(msg), nil
	case wizard.StepFollowup:
		return m.handleFollowupKey(msg), nil
	case wizard.StepDetails:
		return m.handleDetailsKey(msg)
	case wizard.StepContact:
		return m.handleContactKey(msg)
	case wizard.StepConfirm:
		return m.handleConfirmKey(msg), nil
	}
	return m, nil
}

func (m Model) handleReasonKey(msg tea.KeyMsg) Model {
	all := catalog.All()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(all)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.machine = m.machine.ToggleReason(all[m.cursor].ID)
	case key.Matches(msg, m.keys.Next):
		next := m.machine.NextFromReason()
		if next.Step != m.machine.Step {
			m.cursor = 0
		}
		m.machine = next
		m.syncInputs()
	default:
		if idx, ok := digitIndex(msg, len(all)); ok {
			m.machine = m.machine.ToggleReason(all[idx].ID)
		}
	}
	return m
}

func (m Model) handleFollowupKey(msg tea.KeyMsg) Model {
	options := m.machine.Draft.FollowupOptions()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(options)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(options) {
			m.machine = m.machine.ToggleFollowup(options[m.cursor])
		}
	case key.Matches(msg, m.keys.Next):
		m.machine = m.machine.NextFromFollowup()
		m.cursor = 0
		m.syncInputs()
	case key.Matches(msg, m.keys.Back):
		m.machine = m.machine.Back()
		m.cursor = 0
	default:
		if idx, ok := digitIndex(msg, len(options)); ok {
			m.machine = m.machine.ToggleFollowup(options[idx])
		}
	}
	return m
}

func (m Model) handleDetailsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Printable keys belong to the textarea here, so next/back are exact
	// chords rather than the chip-step bindings.
	switch {
	case msg.Type == tea.KeyEnter:
		m.machine = m.machine.SubmitDetails()
		m.syncInputs()
		return m, nil
	case msg.String() == "ctrl+b":
		m.machine = m.machine.Back()
		m.cursor = 0
		return m, nil
	}
	if msg.Alt {
		suggestions := catalog.Suggestions()
		if idx, ok := digitIndex(msg, len(suggestions)); ok {
			m.machine = m.machine.AppendSuggestion(suggestions[idx])
			m.message.SetValue(m.machine.Draft.Message)
			m.message.CursorEnd()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.message, cmd = m.message.Update(msg)
	m.machine = m.machine.SetMessage(m.message.Value())
	return m, cmd
}

func (m Model) handleContactKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyTab:
		m.focusName = !m.focusName
		if m.focusName {
			m.email.Blur()
			m.name.Focus()
		} else {
			m.name.Blur()
			m.email.Focus()
		}
		return m, nil
	case msg.Type == tea.KeyEnter:
		next := m.machine.BeginSend()
		started := next.Sending && !m.machine.Sending
		m.machine = next
		if started {
			return m, m.sendCmd()
		}
		return m, nil
	case msg.String() == "ctrl+b":
		if m.machine.Sending {
			return m, nil
		}
		m.machine = m.machine.Back()
		m.syncInputs()
		return m, nil
	}
	var cmd tea.Cmd
	if m.focusName {
		m.name, cmd = m.name.Update(msg)
		m.machine = m.machine.SetName(m.name.Value())
	} else {
		m.email, cmd = m.email.Update(msg)
		m.machine = m.machine.SetEmail(m.email.Value())
	}
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) Model {
	switch {
	case msg.Type == tea.KeyEnter:
		m.machine = m.machine.Close()
	case key.Matches(msg, m.keys.Another):
		m.machine = m.machine.StartAnother()
		m.cursor = 0
		m.syncInputs()
	}
	return m
}

// syncInputs aligns the text components with the machine after a step
// change, so Back and reload land with the draft's current values.
func (m *Model) syncInputs() {
	switch m.machine.Step {
	case wizard.StepDetails:
		m.message.SetValue(m.machine.Draft.Message)
		m.message.CursorEnd()
		m.message.Focus()
	case wizard.StepContact:
		m.email.SetValue(m.machine.Draft.Email)
		m.name.SetValue(m.machine.Draft.Name)
		m.focusName = false
		m.name.Blur()
		m.email.Focus()
	}
}

func (m Model) sendCmd() tea.Cmd {
	client := m.client
	d := m.machine.Draft
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), transport.DefaultTimeout)
		defer cancel()
		return sendResultMsg{err: client.Submit(ctx, d)}
	}
}

// digitIndex maps a plain digit key to a zero-based index below n.
func digitIndex(msg tea.KeyMsg, n int) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	idx := int(r - '1')
	if idx >= n {
		return 0, false
	}
	return idx, true
}
