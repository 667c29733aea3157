package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-session-tree/internal/tmux"
	"github.com/atomicstack/tmux-session-tree/internal/ui/state"
)

type fakeBackend struct {
	sessions   []tmux.Session
	fetchErr   error
	fetchCalls int

	created   []string
	createErr error
	renamed   [][2]string
	renameErr error
	killed    []string
	killErr   error
}

func (f *fakeBackend) FetchSessions() ([]tmux.Session, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.sessions, nil
}

func (f *fakeBackend) NewSession(name string) error {
	f.created = append(f.created, name)
	return f.createErr
}

func (f *fakeBackend) RenameSession(target, newName string) error {
	f.renamed = append(f.renamed, [2]string{target, newName})
	return f.renameErr
}

func (f *fakeBackend) KillSession(target string) error {
	f.killed = append(f.killed, target)
	return f.killErr
}

func fixtureSessions() []tmux.Session {
	return []tmux.Session{
		{
			Name:        "dev",
			Attached:    true,
			WindowCount: 2,
			Windows: []tmux.Window{
				{Index: 0, Name: "zsh", Active: true, Panes: []tmux.Pane{{Index: 0, Command: "zsh", Path: "/tmp", Active: true}}},
				{Index: 1, Name: "vim", Panes: []tmux.Pane{
					{Index: 0, Command: "vim", Path: "/tmp", Active: true},
					{Index: 1, Command: "zsh", Path: "/tmp"},
				}},
			},
		},
		{
			Name:        "scratch",
			WindowCount: 1,
			Windows: []tmux.Window{
				{Index: 0, Name: "bash", Active: true, Panes: []tmux.Pane{{Index: 0, Command: "bash", Path: "/tmp", Active: true}}},
			},
		},
	}
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestModel(t *testing.T, backend *fakeBackend) (*Model, *fakeClock) {
	t.Helper()
	m := NewModel(backend, false)
	clock := &fakeClock{now: time.Now()}
	m.now = clock.Now
	m.lastRefresh = clock.now
	return m, clock
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m *Model, text string) {
	t.Helper()
	for _, r := range text {
		m.Update(keyRunes(string(r)))
	}
}

// quits reports whether the command resolves to a program exit.
func quits(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewModelSelectsFirstWindow(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, _ := newTestModel(t, backend)
	if backend.fetchCalls != 1 {
		t.Fatalf("expected one initial fetch, got %d", backend.fetchCalls)
	}
	if got := m.tree.Selected(); !got.Equal(state.Path{"dev", "0"}) {
		t.Fatalf("expected first window selected, got %v", got)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		keyRunes("q"),
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		backend := &fakeBackend{sessions: fixtureSessions()}
		m, _ := newTestModel(t, backend)
		_, cmd := m.Update(key)
		if !quits(cmd) {
			t.Fatalf("key %q must quit", key.String())
		}
		if m.AttachTarget() != "" {
			t.Fatalf("quit must not set an attach target, got %q", m.AttachTarget())
		}
	}
}

func TestEnterAttachesToSelection(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, _ := newTestModel(t, backend)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !quits(cmd) {
		t.Fatal("attach must quit the program")
	}
	if m.AttachTarget() != "dev:0" {
		t.Fatalf("expected target dev:0, got %q", m.AttachTarget())
	}
}

func TestEnterOnPaneAttachesToItsWindow(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, _ := newTestModel(t, backend)
	m.tree.Select(state.Path{"dev", "1", "1"})

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.AttachTarget() != "dev:1" {
		t.Fatalf("expected target dev:1, got %q", m.AttachTarget())
	}
}

func TestUppercaseLabelJumpsAndAttaches(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, _ := newTestModel(t, backend)

	_, cmd := m.Update(keyRunes("B"))
	if !quits(cmd) {
		t.Fatal("uppercase label must attach")
	}
	if m.AttachTarget() != "scratch:0" {
		t.Fatalf("expected target scratch:0, got %q", m.AttachTarget())
	}
}

func TestLowercaseLabelJumpsWithoutAttaching(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, _ := newTestModel(t, backend)

	_, cmd := m.Update(keyRunes("b"))
	if cmd != nil {
		t.Fatal("lowercase label must not quit")
	}
	if got := m.tree.Selected(); !got.Equal(state.Path{"scratch", "0"}) {
		t.Fatalf("expected jump to scratch, got %v", got)
	}
}

func TestUnlabelledLetterDoesNothing(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, _ := newTestModel(t, backend)
	before := m.tree.Selected()

	_, cmd := m.Update(keyRunes("Z"))
	if cmd != nil {
		t.Fatal("unlabelled letter must not attach")
	}
	if got := m.tree.Selected(); !got.Equal(before) {
		t.Fatalf("unlabelled letter must not move the selection, got %v", got)
	}
}

func TestDigitSelectsWindowByPosition(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, _ := newTestModel(t, backend)

	m.Update(keyRunes("2"))
	if got := m.tree.Selected(); !got.Equal(state.Path{"dev", "1"}) {
		t.Fatalf("expected second window of dev, got %v", got)
	}
}

func TestCreateSessionFlow(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, _ := newTestModel(t, backend)

	m.Update(keyRunes("n"))
	if _, ok := m.mode.(modeCreate); !ok {
		t.Fatalf("expected create mode, got %T", m.mode)
	}

	typeText(t, m, "work")
	fetches := backend.fetchCalls
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if len(backend.created) != 1 || backend.created[0] != "work" {
		t.Fatalf("expected session work created, got %v", backend.created)
	}
	if _, ok := m.mode.(modeNormal); !ok {
		t.Fatalf("expected return to normal mode, got %T", m.mode)
	}
	if backend.fetchCalls != fetches+1 {
		t.Fatal("expected a refresh after creation")
	}
	if m.flash == nil || m.flash.isError || !strings.Contains(m.flash.text, "work") {
		t.Fatalf("expected success flash, got %#v", m.flash)
	}
}

func TestCreateEmptyNameCancels(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, _ := newTestModel(t, backend)

	m.Update(keyRunes("n"))
	typeText(t, m, "   ")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if len(backend.created) != 0 {
		t.Fatalf("blank name must not create a session, got %v", backend.created)
	}
	if _, ok := m.mode.(modeNormal); !ok {
		t.Fatalf("expected return to normal mode, got %T", m.mode)
	}
}

func TestCreateEscapeCancels(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, _ := newTestModel(t, backend)

	m.Update(keyRunes("n"))
	typeText(t, m, "half-typed")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if len(backend.created) != 0 {
		t.Fatalf("escape must not create a session, got %v", backend.created)
	}
	if _, ok := m.mode.(modeNormal); !ok {
		t.Fatalf("expected return to normal mode, got %T", m.mode)
	}
}

func TestCreateErrorFlashes(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions(), createErr: errors.New("duplicate session: work")}
	m, _ := newTestModel(t, backend)

	m.Update(keyRunes("n"))
	typeText(t, m, "work")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.flash == nil || !m.flash.isError || !strings.Contains(m.flash.text, "duplicate session") {
		t.Fatalf("expected error flash, got %#v", m.flash)
	}
}

func TestRenamePrefillsAndRenames(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, _ := newTestModel(t, backend)

	m.Update(keyRunes("r"))
	md, ok := m.mode.(modeRename)
	if !ok {
		t.Fatalf("expected rename mode, got %T", m.mode)
	}
	if md.target != "dev" || md.input.Value() != "dev" {
		t.Fatalf("expected input prefilled with dev, got target=%q value=%q", md.target, md.input.Value())
	}

	typeText(t, m, "ops")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if len(backend.renamed) != 1 || backend.renamed[0] != [2]string{"dev", "devops"} {
		t.Fatalf("unexpected rename calls %v", backend.renamed)
	}
}

func TestRenameToSameNameCancels(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, _ := newTestModel(t, backend)

	m.Update(keyRunes("r"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if len(backend.renamed) != 0 {
		t.Fatalf("unchanged name must not rename, got %v", backend.renamed)
	}
	if _, ok := m.mode.(modeNormal); !ok {
		t.Fatalf("expected return to normal mode, got %T", m.mode)
	}
	if m.flash != nil {
		t.Fatalf("cancel must not flash, got %#v", m.flash)
	}
}

func TestKillRequiresConfirmation(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, _ := newTestModel(t, backend)

	m.Update(keyRunes("d"))
	md, ok := m.mode.(modeConfirmKill)
	if !ok {
		t.Fatalf("expected confirm-kill mode, got %T", m.mode)
	}
	if md.target != "dev" {
		t.Fatalf("expected target dev, got %q", md.target)
	}

	// Anything but an explicit yes declines.
	m.Update(keyRunes("x"))
	if len(backend.killed) != 0 {
		t.Fatalf("decline must not kill, got %v", backend.killed)
	}
	if _, ok := m.mode.(modeNormal); !ok {
		t.Fatalf("expected return to normal mode, got %T", m.mode)
	}

	m.Update(keyRunes("d"))
	m.Update(keyRunes("y"))
	if len(backend.killed) != 1 || backend.killed[0] != "dev" {
		t.Fatalf("expected dev killed, got %v", backend.killed)
	}
}

func TestKillErrorFlashes(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions(), killErr: errors.New("session not found: dev")}
	m, _ := newTestModel(t, backend)

	m.Update(keyRunes("d"))
	m.Update(keyRunes("y"))

	if m.flash == nil || !m.flash.isError || !strings.Contains(m.flash.text, "session not found") {
		t.Fatalf("expected error flash, got %#v", m.flash)
	}
}

func TestFilterNarrowsAndClears(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, _ := newTestModel(t, backend)

	m.Update(keyRunes("/"))
	if _, ok := m.mode.(modeFilter); !ok {
		t.Fatalf("expected filter mode, got %T", m.mode)
	}
	typeText(t, m, "scr")

	visible := m.visibleSessions()
	if len(visible) != 1 || visible[0].Name != "scratch" {
		t.Fatalf("expected only scratch visible, got %#v", visible)
	}

	// Enter keeps the filter active back in normal mode.
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filter != "scr" {
		t.Fatalf("expected filter kept, got %q", m.filter)
	}

	// Escape from filter mode clears it.
	m.Update(keyRunes("/"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.filter != "" {
		t.Fatalf("expected filter cleared, got %q", m.filter)
	}
	if got := len(m.visibleSessions()); got != 2 {
		t.Fatalf("expected all sessions visible again, got %d", got)
	}
}

func TestFilteredLabelsIndexVisibleList(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, _ := newTestModel(t, backend)
	m.filter = "scr"

	m.Update(keyRunes("a"))
	if got := m.tree.Selected(); !got.Equal(state.Path{"scratch", "0"}) {
		t.Fatalf("label A must address the first filtered session, got %v", got)
	}
}

func TestRefreshErrorKeepsSnapshot(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, _ := newTestModel(t, backend)

	backend.fetchErr = errors.New("server gone")
	m.Update(keyRunes("R"))

	if len(m.sessions) != 2 {
		t.Fatalf("failed refresh must keep the previous snapshot, got %#v", m.sessions)
	}
	if m.flash == nil || !m.flash.isError || !strings.Contains(m.flash.text, "server gone") {
		t.Fatalf("expected error flash, got %#v", m.flash)
	}
}

func TestFlashExpiresAfterThreeSeconds(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, clock := newTestModel(t, backend)

	m.setFlash("hello", false)
	clock.Advance(flashDuration - time.Millisecond)
	m.lastRefresh = clock.now
	m.tick()
	if m.flash == nil {
		t.Fatal("flash expired too early")
	}

	clock.Advance(time.Millisecond)
	m.lastRefresh = clock.now
	m.tick()
	if m.flash != nil {
		t.Fatalf("expected flash expired, got %#v", m.flash)
	}
}

func TestAutoRefreshEveryTwoSeconds(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, clock := newTestModel(t, backend)
	fetches := backend.fetchCalls

	clock.Advance(autoRefreshInterval - time.Millisecond)
	m.tick()
	if backend.fetchCalls != fetches {
		t.Fatal("refreshed before the interval elapsed")
	}

	clock.Advance(time.Millisecond)
	m.tick()
	if backend.fetchCalls != fetches+1 {
		t.Fatalf("expected one auto refresh, got %d fetches", backend.fetchCalls-fetches)
	}
	if !m.lastRefresh.Equal(clock.now) {
		t.Fatal("expected lastRefresh to move to the refresh time")
	}
}

func TestSelectionSurvivesRefresh(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, _ := newTestModel(t, backend)
	m.tree.Select(state.Path{"scratch"})

	backend.sessions = fixtureSessions()
	m.Update(keyRunes("R"))
	if got := m.tree.Selected(); !got.Equal(state.Path{"scratch"}) {
		t.Fatalf("selection must survive a snapshot swap, got %v", got)
	}
}

func TestViewRendersTree(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, _ := newTestModel(t, backend)
	m.width = 120

	view := m.View()
	for _, want := range []string{
		"[A]", "dev", "2 windows", "(attached)",
		"[B]", "scratch", "1 window",
		"0: zsh", "1: vim",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q:\n%s", want, view)
		}
	}
}

func TestViewEmptyStates(t *testing.T) {
	backend := &fakeBackend{}
	m, _ := newTestModel(t, backend)

	if view := m.View(); !strings.Contains(view, "press n to create one") {
		t.Fatalf("expected empty-server hint:\n%s", view)
	}

	backend.sessions = fixtureSessions()
	m.refresh()
	m.filter = "zzz"
	if view := m.View(); !strings.Contains(view, fmt.Sprintf("No sessions match %q", "zzz")) {
		t.Fatalf("expected no-match message:\n%s", view)
	}
}

func TestViewConfirmKillPrompt(t *testing.T) {
	backend := &fakeBackend{sessions: fixtureSessions()}
	m, _ := newTestModel(t, backend)

	m.Update(keyRunes("d"))
	if view := m.View(); !strings.Contains(view, `Kill session "dev"? (y/N)`) {
		t.Fatalf("expected kill prompt:\n%s", view)
	}
}
