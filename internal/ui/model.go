// Package ui implements the Bubble Tea model for the session tree: the modal
// input state machine, the housekeeping clock, and the tree view. The model
// owns the hierarchy snapshot and replaces it wholesale on every refresh; the
// navigation state survives replacement because it addresses nodes by name and
// index, never by reference.
package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-session-tree/internal/logging/events"
	"github.com/atomicstack/tmux-session-tree/internal/theme"
	"github.com/atomicstack/tmux-session-tree/internal/tmux"
	"github.com/atomicstack/tmux-session-tree/internal/ui/state"
)

var styles = theme.Default()

// Backend is the slice of the tmux client the model depends on. Every call
// is blocking and synchronous; typical latency is well under the tick
// interval, so the stall is accepted rather than worked around.
type Backend interface {
	FetchSessions() ([]tmux.Session, error)
	NewSession(name string) error
	RenameSession(target, newName string) error
	KillSession(target string) error
}

const (
	flashDuration       = 3 * time.Second
	autoRefreshInterval = 2 * time.Second
	tickInterval        = 250 * time.Millisecond
)

type tickMsg time.Time

// flash is the transient status line. Only one exists at a time; setting a
// new one discards the previous regardless of age.
type flash struct {
	text    string
	isError bool
	created time.Time
}

// Model is the application state.
type Model struct {
	backend  Backend
	sessions []tmux.Session
	tree     *state.Tree
	mode     mode
	filter   string
	flash    *flash

	lastRefresh  time.Time
	attachTarget string
	showBanner   bool
	width        int
	height       int

	now func() time.Time
}

// NewModel fetches the initial hierarchy and focuses the first session.
func NewModel(backend Backend, showBanner bool) *Model {
	m := &Model{
		backend:    backend,
		tree:       state.NewTree(),
		mode:       modeNormal{},
		showBanner: showBanner,
		now:        time.Now,
	}
	m.refresh()
	if len(m.sessions) > 0 {
		m.tree.OpenAndSelect(m.sessions, m.sessions[0].Name)
	}
	return m
}

// AttachTarget returns the attach target chosen by the user, or empty when
// the program ended without attaching. The caller performs the actual
// exec-replace after terminal teardown.
func (m *Model) AttachTarget() string {
	return m.attachTarget
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.tick()
		return m, tick()
	case tea.KeyMsg:
		switch act := m.handleKey(msg).(type) {
		case actionQuit:
			events.App.Exit("quit")
			return m, tea.Quit
		case actionAttach:
			m.attachTarget = act.target
			events.App.Attach(act.target)
			return m, tea.Quit
		case actionRefresh:
			m.refresh()
		}
		return m, nil
	}
	return m, m.forwardToInput(msg)
}

// forwardToInput routes non-key messages (cursor blink) to the active modal
// input buffer, if any.
func (m *Model) forwardToInput(msg tea.Msg) tea.Cmd {
	switch md := m.mode.(type) {
	case modeCreate:
		input, cmd := md.input.Update(msg)
		md.input = input
		m.mode = md
		return cmd
	case modeRename:
		input, cmd := md.input.Update(msg)
		md.input = input
		m.mode = md
		return cmd
	case modeFilter:
		input, cmd := md.input.Update(msg)
		md.input = input
		m.mode = md
		return cmd
	}
	return nil
}

// refresh replaces the hierarchy with a fresh snapshot. Failures surface as a
// flash message; the previous snapshot stays on screen.
func (m *Model) refresh() {
	m.lastRefresh = m.now()
	sessions, err := m.backend.FetchSessions()
	if err != nil {
		m.setFlash(fmt.Sprintf("Refresh failed: %v", err), true)
		events.Session.Refresh(len(m.sessions), err)
		return
	}
	m.sessions = sessions
	events.Session.Refresh(len(sessions), nil)
}

// tick runs the housekeeping clock: flash expiry and auto-refresh. Cadence is
// bounded by the tea.Tick interval, not by the thresholds exactly.
func (m *Model) tick() {
	if m.flash != nil && m.now().Sub(m.flash.created) >= flashDuration {
		m.flash = nil
	}
	if m.now().Sub(m.lastRefresh) >= autoRefreshInterval {
		m.refresh()
	}
}

func (m *Model) setFlash(text string, isError bool) {
	m.flash = &flash{text: text, isError: isError, created: m.now()}
	events.UI.Flash(text, isError)
}

func (m *Model) setMode(md mode) {
	m.mode = md
	events.UI.Mode(md.modeName())
}

// visibleSessions returns the sessions shown in the tree, honouring the
// active filter. Label letters index into this list.
func (m *Model) visibleSessions() []tmux.Session {
	return state.MatchSessions(m.sessions, m.filter)
}
