// Package state holds the navigation state for the session tree: which nodes
// are expanded and which path is selected. The state is layered over whichever
// hierarchy is current and never holds references into it, so a full refresh
// cannot leave it dangling.
package state

import (
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/tmux-session-tree/internal/tmux"
)

// Path addresses a tree node by content rather than position: empty (nothing
// selected), [session], [session, window] or [session, window, pane], with
// window and pane indexes in string form. A path that no longer resolves
// against the current hierarchy simply stops matching; it is never an error.
type Path []string

// Equal reports whether two paths address the same node.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

func (p Path) key() string {
	return strings.Join(p, "\x1f")
}

// Tree tracks expansion and selection over the session hierarchy.
type Tree struct {
	opened   map[string]struct{}
	selected Path
}

func NewTree() *Tree {
	return &Tree{opened: make(map[string]struct{})}
}

// Selected returns the currently selected path. Empty means nothing is
// selected, e.g. with an empty hierarchy.
func (t *Tree) Selected() Path {
	return t.selected
}

// Select sets the selection without validating it against any hierarchy.
func (t *Tree) Select(p Path) {
	t.selected = p
}

// IsOpen reports whether the node at p is expanded.
func (t *Tree) IsOpen(p Path) bool {
	_, ok := t.opened[p.key()]
	return ok
}

// Visible flattens the hierarchy depth first honouring the opened set.
// Sessions not matching the fuzzy filter are hidden together with their
// children. Pane leaves appear only under open windows with at least two
// panes; a single pane adds nothing over its window.
func (t *Tree) Visible(sessions []tmux.Session, filter string) []Path {
	var paths []Path
	for _, session := range MatchSessions(sessions, filter) {
		sessionPath := Path{session.Name}
		paths = append(paths, sessionPath)
		if !t.IsOpen(sessionPath) {
			continue
		}
		for _, window := range session.Windows {
			windowPath := Path{session.Name, strconv.Itoa(window.Index)}
			paths = append(paths, windowPath)
			if len(window.Panes) < 2 || !t.IsOpen(windowPath) {
				continue
			}
			for _, pane := range window.Panes {
				paths = append(paths, Path{session.Name, strconv.Itoa(window.Index), strconv.Itoa(pane.Index)})
			}
		}
	}
	return paths
}

// MatchSessions returns the sessions whose names fuzzy-match the filter, in
// hierarchy order. An empty filter matches everything.
func MatchSessions(sessions []tmux.Session, filter string) []tmux.Session {
	if filter == "" {
		return sessions
	}
	matched := make([]tmux.Session, 0, len(sessions))
	for _, session := range sessions {
		if fuzzy.MatchFold(filter, session.Name) {
			matched = append(matched, session)
		}
	}
	return matched
}

// MoveDown advances the selection to the next visible node, clamped at the
// end. With no resolvable selection it falls back to the first node.
func (t *Tree) MoveDown(sessions []tmux.Session, filter string) {
	t.moveBy(sessions, filter, 1)
}

// MoveUp moves the selection to the previous visible node, clamped at the
// start.
func (t *Tree) MoveUp(sessions []tmux.Session, filter string) {
	t.moveBy(sessions, filter, -1)
}

func (t *Tree) moveBy(sessions []tmux.Session, filter string, delta int) {
	visible := t.Visible(sessions, filter)
	if len(visible) == 0 {
		return
	}
	current := t.indexOf(visible)
	if current < 0 {
		t.selected = visible[0]
		return
	}
	next := current + delta
	if next < 0 {
		next = 0
	}
	if next > len(visible)-1 {
		next = len(visible) - 1
	}
	t.selected = visible[next]
}

// SelectFirst selects the first visible node, if any.
func (t *Tree) SelectFirst(sessions []tmux.Session, filter string) {
	if visible := t.Visible(sessions, filter); len(visible) > 0 {
		t.selected = visible[0]
	}
}

// SelectLast selects the last visible node, if any.
func (t *Tree) SelectLast(sessions []tmux.Session, filter string) {
	if visible := t.Visible(sessions, filter); len(visible) > 0 {
		t.selected = visible[len(visible)-1]
	}
}

// Expand opens the selected node when it has children to show: a session with
// windows, or a window with two or more panes.
func (t *Tree) Expand(sessions []tmux.Session) {
	if t.expandable(sessions, t.selected) {
		t.opened[t.selected.key()] = struct{}{}
	}
}

// Collapse closes the selected node when it is open; otherwise it moves the
// selection to the parent. At the top level with nothing open it is a no-op.
func (t *Tree) Collapse() {
	if t.IsOpen(t.selected) {
		delete(t.opened, t.selected.key())
		return
	}
	if len(t.selected) > 1 {
		t.selected = t.selected[:len(t.selected)-1]
	}
}

// OpenAndSelect expands the named session and selects its first window,
// falling back to the session itself when it has none. Unknown names are
// ignored.
func (t *Tree) OpenAndSelect(sessions []tmux.Session, name string) {
	session := findSession(sessions, name)
	if session == nil {
		return
	}
	t.opened[Path{session.Name}.key()] = struct{}{}
	if len(session.Windows) > 0 {
		t.selected = Path{session.Name, strconv.Itoa(session.Windows[0].Index)}
		return
	}
	t.selected = Path{session.Name}
}

// SelectWindow selects a window by its 1-based position in the session's
// sorted window list; the position is a display rank, not the window's own
// index. Failed lookups leave the selection untouched.
func (t *Tree) SelectWindow(sessions []tmux.Session, name string, position int) {
	session := findSession(sessions, name)
	if session == nil {
		return
	}
	if position < 1 || position > len(session.Windows) {
		return
	}
	window := session.Windows[position-1]
	t.opened[Path{session.Name}.key()] = struct{}{}
	t.selected = Path{session.Name, strconv.Itoa(window.Index)}
}

func (t *Tree) indexOf(visible []Path) int {
	for i, p := range visible {
		if p.Equal(t.selected) {
			return i
		}
	}
	return -1
}

func (t *Tree) expandable(sessions []tmux.Session, p Path) bool {
	switch len(p) {
	case 1:
		session := findSession(sessions, p[0])
		return session != nil && len(session.Windows) > 0
	case 2:
		session := findSession(sessions, p[0])
		if session == nil {
			return false
		}
		for _, window := range session.Windows {
			if strconv.Itoa(window.Index) == p[1] {
				return len(window.Panes) > 1
			}
		}
	}
	return false
}

func findSession(sessions []tmux.Session, name string) *tmux.Session {
	for i := range sessions {
		if sessions[i].Name == name {
			return &sessions[i]
		}
	}
	return nil
}
