package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/stickies/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
	ColorInk    = lipgloss.Color("#282828")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Note paper colours. These are lighter than the text palette so dark ink
// stays readable on top of them.
var noteBackgrounds = map[domain.Color]lipgloss.Color{
	domain.ColorYellow: lipgloss.Color("#fabd2f"),
	domain.ColorGreen:  lipgloss.Color("#b8bb26"),
	domain.ColorBlue:   lipgloss.Color("#83a598"),
	domain.ColorPink:   lipgloss.Color("#d3869b"),
	domain.ColorPurple: lipgloss.Color("#b16286"),
}

// NoteBackground returns the paper colour for c, falling back to yellow.
func NoteBackground(c domain.Color) lipgloss.Color {
	if bg, ok := noteBackgrounds[c]; ok {
		return bg
	}
	return noteBackgrounds[domain.ColorYellow]
}

// NoteStyle is the fill style of a note body.
func NoteStyle(c domain.Color) lipgloss.Style {
	return lipgloss.NewStyle().Background(NoteBackground(c)).Foreground(ColorInk)
}

// Swatch renders a small coloured block followed by the colour name.
func Swatch(c domain.Color) string {
	return lipgloss.NewStyle().Foreground(NoteBackground(c)).Render("■") + " " + string(c)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Success prefixes msg with a green check mark.
func Success(msg string) string {
	return StyleGreen.Render("✔") + " " + msg
}

// Error renders an error message in red.
func Error(err error) string {
	return StyleRed.Render("Error: " + err.Error())
}
