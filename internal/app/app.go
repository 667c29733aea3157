package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-session-tree/internal/tmux"
	"github.com/atomicstack/tmux-session-tree/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	SocketPath string
	NoLogo     bool
}

// Run bootstraps and executes the Bubble Tea program. It returns the attach
// target chosen by the user, or empty when the UI exited without attaching;
// the caller performs the exec hand-off after terminal teardown.
func Run(cfg Config) (string, error) {
	client := tmux.NewClient(cfg.SocketPath)
	model := ui.NewModel(client, !cfg.NoLogo)
	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return "", nil
		}
		return "", err
	}
	if m, ok := final.(*ui.Model); ok {
		return m.AttachTarget(), nil
	}
	return "", nil
}
