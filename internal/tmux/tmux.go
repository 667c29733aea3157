// Package tmux shells out to the tmux binary and turns its delimited
// list-panes output into the session → window → pane hierarchy the UI
// renders. The hierarchy is rebuilt wholesale on every fetch; nothing in it
// survives a refresh by identity, only by name or index.
package tmux

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

type Pane struct {
	Index   int
	Command string
	Path    string
	Active  bool
}

type Window struct {
	Index  int
	Name   string
	Active bool
	Panes  []Pane
}

type Session struct {
	Name        string
	ID          string
	Attached    bool
	WindowCount int
	Created     int64
	Windows     []Window
}

// bulkFormat is the fixed 12-field line layout queried from tmux. Field order
// and count are dictated by the parser; keep the two in sync.
const bulkFormat = "#{session_name}|#{session_id}|#{session_attached}|#{session_windows}|#{session_created}|#{window_index}|#{window_name}|#{window_active}|#{pane_index}|#{pane_current_command}|#{pane_current_path}|#{pane_active}"

// FetchSessions issues the bulk query and parses the result. An idle server
// ("no server running") or one without sessions ("no sessions") yields an
// empty hierarchy rather than an error.
func (c *Client) FetchSessions() ([]Session, error) {
	out, stderr, err := c.run("list-panes", "-aF", bulkFormat)
	if err != nil {
		if strings.Contains(stderr, "no server running") || strings.Contains(stderr, "no sessions") {
			return nil, nil
		}
		return nil, commandFailure("tmux list-panes", stderr, err)
	}
	return ParseSessions(out), nil
}

// ParseSessions groups one pane per input line into sessions and windows.
// Sessions appear in input order deduplicated by name; session and window
// metadata is taken from the first line that mentions them. Malformed lines
// are skipped, unparsable numeric fields default to zero.
func ParseSessions(output string) []Session {
	var order []string
	byName := make(map[string]*Session)

	for _, line := range strings.Split(output, "\n") {
		parts := strings.Split(line, "|")
		if len(parts) < 12 {
			continue
		}

		name := parts[0]
		session, ok := byName[name]
		if !ok {
			session = &Session{
				Name:        name,
				ID:          parts[1],
				Attached:    parts[2] != "0",
				WindowCount: atoiOrZero(parts[3]),
				Created:     int64OrZero(parts[4]),
			}
			byName[name] = session
			order = append(order, name)
		}

		windowIndex := atoiOrZero(parts[5])
		window := findWindow(session, windowIndex)
		if window == nil {
			session.Windows = append(session.Windows, Window{
				Index:  windowIndex,
				Name:   parts[6],
				Active: parts[7] != "0",
			})
			window = &session.Windows[len(session.Windows)-1]
		}
		window.Panes = append(window.Panes, Pane{
			Index:   atoiOrZero(parts[8]),
			Command: parts[9],
			Path:    parts[10],
			Active:  strings.TrimSpace(parts[11]) != "0",
		})
	}

	sessions := make([]Session, 0, len(order))
	for _, name := range order {
		session := byName[name]
		sort.SliceStable(session.Windows, func(i, j int) bool {
			return session.Windows[i].Index < session.Windows[j].Index
		})
		for i := range session.Windows {
			panes := session.Windows[i].Panes
			sort.SliceStable(panes, func(a, b int) bool {
				return panes[a].Index < panes[b].Index
			})
		}
		sessions = append(sessions, *session)
	}
	return sessions
}

// ActivePane returns the window's active pane, falling back to the first pane
// in index order when none is marked active.
func (w Window) ActivePane() *Pane {
	for i := range w.Panes {
		if w.Panes[i].Active {
			return &w.Panes[i]
		}
	}
	if len(w.Panes) > 0 {
		return &w.Panes[0]
	}
	return nil
}

// WindowSummary renders the short "command  path" annotation shown next to a
// window entry.
func WindowSummary(w Window) string {
	pane := w.ActivePane()
	if pane == nil {
		return ""
	}
	return fmt.Sprintf("%s  %s", pane.Command, ShortenPath(pane.Path))
}

// ShortenPath replaces the home directory prefix with ~.
func ShortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if rest, ok := strings.CutPrefix(path, home); ok {
		return "~" + rest
	}
	return path
}

func findWindow(session *Session, index int) *Window {
	for i := range session.Windows {
		if session.Windows[i].Index == index {
			return &session.Windows[i]
		}
	}
	return nil
}

func atoiOrZero(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func int64OrZero(value string) int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
