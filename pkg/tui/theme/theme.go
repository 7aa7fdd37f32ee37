package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header HeaderTheme
	Footer FooterTheme
	Pane   PaneTheme
	Prompt PromptTheme
}

// HeaderTheme styles the journey title bar.
type HeaderTheme struct {
	Title       lipgloss.Style
	Description lipgloss.Style
	Source      lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Focus  lipgloss.Style
}

// PaneTheme styles the framed editor, map and notes panes.
type PaneTheme struct {
	Frame        lipgloss.Style
	FocusedFrame lipgloss.Style
	Title        lipgloss.Style
	InvalidTitle lipgloss.Style
}

// PromptTheme styles the import prompt and its export list.
type PromptTheme struct {
	Frame    lipgloss.Style
	Label    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Meta     lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	frame := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))
	item := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	return Theme{
		Header: HeaderTheme{
			Title: lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1),
			Description: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(0, 1),
			Source:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Focus:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
		Pane: PaneTheme{
			Frame:        frame,
			FocusedFrame: frame.BorderForeground(lipgloss.Color("212")),
			Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
			InvalidTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		},
		Prompt: PromptTheme{
			Frame:    frame.Padding(0, 1),
			Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Item:     item,
			Selected: item.Reverse(true),
			Meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
	}
}
