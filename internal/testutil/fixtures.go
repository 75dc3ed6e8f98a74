package testutil

import (
	"github.com/alexanderramin/stickies/internal/domain"
	"github.com/google/uuid"
)

// NoteOption customizes a fixture note.
type NoteOption func(*domain.Note)

func WithPosition(top, left float64) NoteOption {
	return func(n *domain.Note) {
		n.Position = domain.Position{Top: top, Left: left}
	}
}

func WithColor(c domain.Color) NoteOption {
	return func(n *domain.Note) {
		n.Color = c
	}
}

func WithID(id string) NoteOption {
	return func(n *domain.Note) {
		n.ID = id
	}
}

// NewTestNote builds a yellow note at the origin with a fresh uuid.
func NewTestNote(text string, opts ...NoteOption) domain.Note {
	n := domain.Note{
		ID:    uuid.New().String(),
		Text:  text,
		Color: domain.ColorYellow,
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// SequentialIDs returns an id generator yielding the given ids in order,
// then falling back to random uuids.
func SequentialIDs(ids ...string) func() string {
	i := 0
	return func() string {
		if i < len(ids) {
			id := ids[i]
			i++
			return id
		}
		return uuid.New().String()
	}
}
