package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/stickies/internal/domain"
)

const previewWidth = 48

// FormatNoteList renders notes as a table in board order.
func FormatNoteList(notes []domain.Note, palette domain.Palette) string {
	if len(notes) == 0 {
		return Dim("No notes yet. Add one with: stickies add <text>") + "\n"
	}

	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		rows = append(rows, []string{
			Bold(n.ShortID()),
			Swatch(palette.Resolve(n.Color)),
			FormatPosition(n.Position),
			Preview(n.Text, previewWidth),
		})
	}
	return RenderTable([]string{"ID", "COLOR", "POSITION", "TEXT"}, rows)
}

// FormatPosition renders a position as "top,left" in whole cells.
func FormatPosition(p domain.Position) string {
	return fmt.Sprintf("%d,%d", int(p.Top), int(p.Left))
}

// Preview flattens text onto one line and truncates it to width runes.
func Preview(text string, width int) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) <= width {
		return flat
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
