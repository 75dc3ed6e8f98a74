package importer

import (
	"strings"

	"github.com/alexanderramin/stickies/internal/domain"
	"github.com/google/uuid"
)

// Convert transforms validated notes into domain notes in file order.
// Call ValidateImport first; Convert assumes the input is valid.
//
// Missing ids get a fresh uuid, missing positions sit at the board origin
// and missing colours take the palette default.
func Convert(notes []NoteImport, palette domain.Palette) []domain.Note {
	out := make([]domain.Note, 0, len(notes))
	for _, n := range notes {
		id := n.ID
		if id == "" {
			id = uuid.New().String()
		}

		var pos domain.Position
		if n.Position != nil {
			pos = domain.Position{Top: n.Position.Top, Left: n.Position.Left}
		}

		color := domain.Color(strings.ToLower(n.Color))
		if color == "" {
			color = palette.Default()
		}

		out = append(out, domain.Note{
			ID:       id,
			Text:     n.Text,
			Position: pos,
			Color:    color,
		})
	}
	return out
}
