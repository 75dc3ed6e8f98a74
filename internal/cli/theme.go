package cli

import (
	"github.com/alexanderramin/stickies/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// alertWidth is the width of the modal shown over the board.
const alertWidth = 44

// stickiesHuhTheme creates a gruvbox-inspired huh theme matching the board.
func stickiesHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Base = t.Focused.Base.BorderForeground(formatter.ColorHeader)
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.NoteTitle = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorInk).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Next = t.Focused.FocusedButton

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.NoteTitle = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// alertForm builds the notice shown when a note cannot be added.
func alertForm(title, message string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(title).
				Description(message).
				Next(true).
				NextLabel("OK"),
		),
	).WithTheme(stickiesHuhTheme()).WithShowHelp(false).WithWidth(alertWidth)
}
