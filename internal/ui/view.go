package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/tmux-session-tree/internal/format/table"
	"github.com/atomicstack/tmux-session-tree/internal/tmux"
	"github.com/atomicstack/tmux-session-tree/internal/ui/state"
)

const maxSessionLabels = 26

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]string, 0, 16)
	if m.showBanner {
		for _, line := range bannerLines {
			lines = append(lines, styles.Banner.Render(line))
		}
		lines = append(lines, "")
	}

	visible := m.visibleSessions()
	if len(visible) == 0 {
		empty := "(no sessions — press n to create one)"
		if m.filter != "" {
			empty = fmt.Sprintf("No sessions match %q", m.filter)
		}
		lines = append(lines, styles.Summary.Render(empty))
	} else {
		lines = append(lines, m.treeLines(visible)...)
	}

	lines = append(lines, "", m.statusLine())
	return strings.Join(lines, "\n") + "\n"
}

func (m *Model) treeLines(visible []tmux.Session) []string {
	selected := m.tree.Selected()
	out := make([]string, 0, len(visible)*4)
	for i, session := range visible {
		out = append(out, m.sessionLine(i, session, selected))
		if m.tree.IsOpen(state.Path{session.Name}) {
			out = append(out, m.windowLines(session, selected)...)
		}
	}
	return out
}

func (m *Model) sessionLine(position int, session tmux.Session, selected state.Path) string {
	path := state.Path{session.Name}
	arrow := "▸"
	if m.tree.IsOpen(path) {
		arrow = "▾"
	}
	label := "   "
	if position < maxSessionLabels {
		label = fmt.Sprintf("[%c]", rune('A'+position))
	}
	windows := fmt.Sprintf("%d window", session.WindowCount)
	if session.WindowCount != 1 {
		windows += "s"
	}
	text := fmt.Sprintf("%s %s %s — %s", label, arrow, session.Name, windows)
	if session.Attached {
		text += " (attached)"
	}
	return m.renderRow(text, path.Equal(selected), styles.Session)
}

func (m *Model) windowLines(session tmux.Session, selected state.Path) []string {
	rows := make([][]string, 0, len(session.Windows))
	for _, window := range session.Windows {
		title := fmt.Sprintf("%s %d: %s", windowMarker(window), window.Index, window.Name)
		rows = append(rows, []string{title, tmux.WindowSummary(window)})
	}
	aligned := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft})

	out := make([]string, 0, len(session.Windows))
	for i, window := range session.Windows {
		path := state.Path{session.Name, strconv.Itoa(window.Index)}
		out = append(out, m.renderRow("    "+aligned[i], path.Equal(selected), styles.Window))
		if len(window.Panes) < 2 || !m.tree.IsOpen(path) {
			continue
		}
		for _, pane := range window.Panes {
			panePath := state.Path{session.Name, strconv.Itoa(window.Index), strconv.Itoa(pane.Index)}
			text := fmt.Sprintf("      %d: %s  %s", pane.Index, pane.Command, tmux.ShortenPath(pane.Path))
			if pane.Active {
				text += "  (active)"
			}
			out = append(out, m.renderRow(text, panePath.Equal(selected), styles.Pane))
		}
	}
	return out
}

func windowMarker(window tmux.Window) string {
	if window.Active {
		return "*"
	}
	return " "
}

func (m *Model) renderRow(text string, selected bool, style *lipgloss.Style) string {
	if m.width > 0 {
		text = truncate.StringWithTail(text, uint(m.width), "…")
	}
	if selected {
		return styles.Selected.Render(text)
	}
	if style != nil {
		return style.Render(text)
	}
	return text
}

func (m *Model) statusLine() string {
	switch md := m.mode.(type) {
	case modeCreate:
		return styles.PromptTitle.Render("New session: ") + md.input.View() +
			"  " + styles.Help.Render("enter to create · esc to cancel")
	case modeRename:
		return styles.PromptTitle.Render(fmt.Sprintf("Rename %s: ", md.target)) + md.input.View() +
			"  " + styles.Help.Render("enter to rename · esc to cancel")
	case modeConfirmKill:
		return styles.FlashError.Render(fmt.Sprintf("Kill session %q? (y/N)", md.target))
	case modeFilter:
		matches := len(m.visibleSessions())
		suffix := fmt.Sprintf("  %d match", matches)
		if matches != 1 {
			suffix += "es"
		}
		return styles.FilterPrompt.Render("Filter: ") + md.input.View() +
			styles.FilterMatches.Render(suffix)
	}
	if m.flash != nil {
		if m.flash.isError {
			return styles.FlashError.Render(m.flash.text)
		}
		return styles.Flash.Render(m.flash.text)
	}
	help := "j/k move · enter attach · n new · r rename · d kill · R refresh · / filter · q quit"
	if m.filter != "" {
		help = fmt.Sprintf("filter %q · ", m.filter) + help
	}
	return styles.Help.Render(help)
}
