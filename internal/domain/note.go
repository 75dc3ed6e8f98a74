package domain

import (
	"strings"
)

// Position is the top-left corner of a note, in board cells.
type Position struct {
	Top  float64 `json:"top" yaml:"top"`
	Left float64 `json:"left" yaml:"left"`
}

// Note is a single sticky note on the board.
type Note struct {
	ID       string   `json:"id" yaml:"id"`
	Text     string   `json:"text" yaml:"text"`
	Position Position `json:"position" yaml:"position"`
	Color    Color    `json:"color,omitempty" yaml:"color,omitempty"`
}

// ShortID returns the first 8 characters of the note ID for display.
func (n Note) ShortID() string {
	if len(n.ID) >= 8 {
		return n.ID[:8]
	}
	return n.ID
}

// HasText reports whether text contains anything other than whitespace.
func HasText(text string) bool {
	return strings.TrimSpace(text) != ""
}
