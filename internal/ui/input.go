package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-session-tree/internal/logging/events"
)

// mode is the modal interaction state. Normal is both the initial state and
// the state every other mode returns to on completion, cancellation, or
// error. Each variant carries only the data its mode needs.
type mode interface {
	modeName() string
}

type modeNormal struct{}

type modeCreate struct {
	input textinput.Model
}

type modeRename struct {
	target string
	input  textinput.Model
}

type modeConfirmKill struct {
	target string
}

type modeFilter struct {
	input textinput.Model
}

func (modeNormal) modeName() string      { return "normal" }
func (modeCreate) modeName() string      { return "create" }
func (modeRename) modeName() string      { return "rename" }
func (modeConfirmKill) modeName() string { return "confirm-kill" }
func (modeFilter) modeName() string      { return "filter" }

// action is the outward effect of one keystroke. The model never attaches or
// exits by itself; it reports the decision and the run loop executes it.
type action interface {
	isAction()
}

type actionNone struct{}

type actionQuit struct{}

type actionRefresh struct{}

type actionAttach struct {
	target string
}

func (actionNone) isAction()    {}
func (actionQuit) isAction()    {}
func (actionRefresh) isAction() {}
func (actionAttach) isAction()  {}

// handleKey maps a keystroke onto the current mode's semantics.
func (m *Model) handleKey(msg tea.KeyMsg) action {
	switch md := m.mode.(type) {
	case modeNormal:
		return m.handleNormalKey(msg)
	case modeCreate:
		return m.handleCreateKey(md, msg)
	case modeRename:
		return m.handleRenameKey(md, msg)
	case modeConfirmKill:
		return m.handleConfirmKillKey(md, msg)
	case modeFilter:
		return m.handleFilterKey(md, msg)
	}
	return actionNone{}
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) action {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return actionQuit{}

	case "j", "down":
		m.tree.MoveDown(m.sessions, m.filter)
		m.noteSelection()
	case "k", "up":
		m.tree.MoveUp(m.sessions, m.filter)
		m.noteSelection()
	case "g":
		m.tree.SelectFirst(m.sessions, m.filter)
		m.noteSelection()
	case "G":
		m.tree.SelectLast(m.sessions, m.filter)
		m.noteSelection()

	case " ", "l", "right":
		m.tree.Expand(m.sessions)
	case "h", "left":
		m.tree.Collapse()

	case "enter":
		return m.attachAction()

	case "n":
		m.setMode(modeCreate{input: newNameInput("")})
	case "d":
		return m.startKill()
	case "r":
		return m.startRename()
	case "R":
		return actionRefresh{}
	case "/":
		m.setMode(modeFilter{input: newFilterInput(m.filter)})

	default:
		if len(msg.Runes) == 1 {
			return m.handleJumpKey(msg.Runes[0])
		}
	}
	return actionNone{}
}

// handleJumpKey resolves the label shortcuts: uppercase letters jump and
// attach, lowercase letters only jump, digits select a window by display
// position within the selected session. Letters without a labelled session
// do nothing.
func (m *Model) handleJumpKey(r rune) action {
	switch {
	case r >= 'A' && r <= 'Z':
		if m.jumpToSession(r) {
			return m.attachAction()
		}
	case r >= 'a' && r <= 'z':
		m.jumpToSession(r - 'a' + 'A')
	case r >= '1' && r <= '9':
		m.jumpToWindow(int(r - '0'))
	}
	return actionNone{}
}

// jumpToSession expands and selects the session labelled with the given
// letter. Labels follow the visible (filtered) session order: A is position
// 0, Z is position 25; later sessions carry no label.
func (m *Model) jumpToSession(letter rune) bool {
	visible := m.visibleSessions()
	idx := int(letter - 'A')
	if idx < 0 || idx >= len(visible) {
		return false
	}
	m.tree.OpenAndSelect(m.sessions, visible[idx].Name)
	m.noteSelection()
	return true
}

// jumpToWindow selects the position-th window (1-based, by sorted order, not
// by window index) of the session owning the current selection.
func (m *Model) jumpToWindow(position int) {
	selected := m.tree.Selected()
	if len(selected) == 0 {
		return
	}
	m.tree.SelectWindow(m.sessions, selected[0], position)
	m.noteSelection()
}

// attachAction derives the attach target from the selection: the session
// name alone, or session:window when a window (or one of its panes) is
// selected.
func (m *Model) attachAction() action {
	selected := m.tree.Selected()
	if len(selected) == 0 {
		return actionNone{}
	}
	if len(selected) == 1 {
		return actionAttach{target: selected[0]}
	}
	return actionAttach{target: selected[0] + ":" + selected[1]}
}

func (m *Model) startKill() action {
	selected := m.tree.Selected()
	if len(selected) == 0 {
		return actionNone{}
	}
	m.setMode(modeConfirmKill{target: selected[0]})
	return actionNone{}
}

func (m *Model) startRename() action {
	selected := m.tree.Selected()
	if len(selected) == 0 {
		return actionNone{}
	}
	m.setMode(modeRename{target: selected[0], input: newNameInput(selected[0])})
	return actionNone{}
}

func (m *Model) handleCreateKey(md modeCreate, msg tea.KeyMsg) action {
	switch msg.Type {
	case tea.KeyEsc:
		events.Session.CancelCreate(events.SessionReasonEscape)
		m.setMode(modeNormal{})
		return actionNone{}
	case tea.KeyEnter:
		name := strings.TrimSpace(md.input.Value())
		m.setMode(modeNormal{})
		if name == "" {
			events.Session.CancelCreate(events.SessionReasonEmpty)
			return actionNone{}
		}
		events.Session.Create(name)
		if err := m.backend.NewSession(name); err != nil {
			m.setFlash(fmt.Sprintf("Error: %v", err), true)
			return actionNone{}
		}
		m.setFlash(fmt.Sprintf("Created session %q", name), false)
		return actionRefresh{}
	}
	input, _ := md.input.Update(msg)
	md.input = input
	m.mode = md
	return actionNone{}
}

func (m *Model) handleRenameKey(md modeRename, msg tea.KeyMsg) action {
	switch msg.Type {
	case tea.KeyEsc:
		events.Session.CancelRename(md.target, events.SessionReasonEscape)
		m.setMode(modeNormal{})
		return actionNone{}
	case tea.KeyEnter:
		newName := strings.TrimSpace(md.input.Value())
		m.setMode(modeNormal{})
		if newName == "" {
			events.Session.CancelRename(md.target, events.SessionReasonEmpty)
			return actionNone{}
		}
		// Renaming to the current name is a cancel, not an error.
		if newName == md.target {
			events.Session.CancelRename(md.target, events.SessionReasonUnchanged)
			return actionNone{}
		}
		events.Session.Rename(md.target, newName)
		if err := m.backend.RenameSession(md.target, newName); err != nil {
			m.setFlash(fmt.Sprintf("Error: %v", err), true)
			return actionNone{}
		}
		m.setFlash(fmt.Sprintf("Renamed %q to %q", md.target, newName), false)
		return actionRefresh{}
	}
	input, _ := md.input.Update(msg)
	md.input = input
	m.mode = md
	return actionNone{}
}

// handleConfirmKillKey treats anything other than an explicit yes as a
// cancel.
func (m *Model) handleConfirmKillKey(md modeConfirmKill, msg tea.KeyMsg) action {
	switch msg.String() {
	case "y", "Y":
		m.setMode(modeNormal{})
		events.Session.Kill(md.target)
		if err := m.backend.KillSession(md.target); err != nil {
			m.setFlash(fmt.Sprintf("Error: %v", err), true)
			return actionNone{}
		}
		m.setFlash(fmt.Sprintf("Killed session %q", md.target), false)
		return actionRefresh{}
	default:
		events.Session.CancelKill(md.target, events.SessionReasonDeclined)
		m.setMode(modeNormal{})
	}
	return actionNone{}
}

func (m *Model) handleFilterKey(md modeFilter, msg tea.KeyMsg) action {
	switch msg.Type {
	case tea.KeyEsc:
		m.filter = ""
		events.Filter.Cleared()
		m.setMode(modeNormal{})
		return actionNone{}
	case tea.KeyEnter:
		m.setMode(modeNormal{})
		return actionNone{}
	}
	input, _ := md.input.Update(msg)
	md.input = input
	m.mode = md
	m.filter = strings.TrimSpace(input.Value())
	events.Filter.Changed(m.filter)
	return actionNone{}
}

func (m *Model) noteSelection() {
	events.UI.Select(m.tree.Selected())
}

func newNameInput(initial string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "session-name"
	ti.CharLimit = 64
	ti.Focus()
	if initial != "" {
		ti.SetValue(initial)
		ti.CursorEnd()
	}
	return ti
}

func newFilterInput(initial string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "(type to filter sessions)"
	ti.CharLimit = 64
	ti.Focus()
	if initial != "" {
		ti.SetValue(initial)
		ti.CursorEnd()
	}
	return ti
}
