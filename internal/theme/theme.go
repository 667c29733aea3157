package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Banner        *lipgloss.Style
	Session       *lipgloss.Style
	Window        *lipgloss.Style
	Pane          *lipgloss.Style
	Selected      *lipgloss.Style
	Summary       *lipgloss.Style
	Flash         *lipgloss.Style
	FlashError    *lipgloss.Style
	PromptTitle   *lipgloss.Style
	Help          *lipgloss.Style
	FilterPrompt  *lipgloss.Style
	FilterMatches *lipgloss.Style
}

var defaultStyles = Styles{
	Banner: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Session: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	Window: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Pane: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Selected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Summary: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Flash: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FlashError: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	PromptTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Help: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterMatches: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
