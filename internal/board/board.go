// Package board owns the note collection and the drag state machine.
//
// A Board is driven from a single event loop and is not safe for concurrent
// use. Every mutation is written through to the Persister.
package board

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/alexanderramin/stickies/internal/domain"
	"github.com/google/uuid"
)

// ErrEmptyText is returned by AddNote when the text is empty or whitespace.
var ErrEmptyText = errors.New("note text is empty")

const (
	DefaultNoteWidth  = 24
	DefaultNoteHeight = 8
)

// Persister loads and saves the full note collection.
type Persister interface {
	Load(ctx context.Context) ([]domain.Note, error)
	Save(ctx context.Context, notes []domain.Note) error
}

// Session is an in-progress drag.
type Session struct {
	NoteID string
	Offset Offset
}

type randSource interface {
	Float64() float64
	IntN(n int) int
}

// Board is the controller for one sticky-note board.
type Board struct {
	notes    []domain.Note
	drag     *Session
	store    Persister
	viewport Viewport

	noteWidth  int
	noteHeight int
	palette    domain.Palette

	rng      randSource
	newID    func() string
	observer Observer
}

// Option configures a Board.
type Option func(*Board)

// WithNoteSize sets the rendered size of every note in cells.
func WithNoteSize(width, height int) Option {
	return func(b *Board) {
		b.noteWidth = width
		b.noteHeight = height
	}
}

// WithPalette sets the colours new notes are drawn from.
func WithPalette(p domain.Palette) Option {
	return func(b *Board) {
		if len(p) > 0 {
			b.palette = p
		}
	}
}

// WithRand replaces the random source used for placement and colour.
func WithRand(r *rand.Rand) Option {
	return func(b *Board) {
		b.rng = r
	}
}

// WithIDGenerator replaces uuid generation for new notes.
func WithIDGenerator(fn func() string) Option {
	return func(b *Board) {
		b.newID = fn
	}
}

// WithObserver sets the event observer.
func WithObserver(o Observer) Option {
	return func(b *Board) {
		if o != nil {
			b.observer = o
		}
	}
}

// WithViewport sets the initial board surface size.
func WithViewport(v Viewport) Option {
	return func(b *Board) {
		b.viewport = v
	}
}

// New creates an empty board. Call Load to rehydrate it.
func New(store Persister, opts ...Option) *Board {
	seed := uint64(time.Now().UnixNano())
	b := &Board{
		notes:      []domain.Note{},
		store:      store,
		noteWidth:  DefaultNoteWidth,
		noteHeight: DefaultNoteHeight,
		palette:    domain.MultiPalette,
		rng:        rand.New(rand.NewPCG(seed, seed>>1|1)),
		newID:      func() string { return uuid.New().String() },
		observer:   NoopObserver{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetViewport updates the surface size used for placing new notes.
func (b *Board) SetViewport(v Viewport) {
	b.viewport = v
}

// Viewport returns the current surface size.
func (b *Board) Viewport() Viewport {
	return b.viewport
}

// NoteSize returns the rendered note size in cells.
func (b *Board) NoteSize() (width, height int) {
	return b.noteWidth, b.noteHeight
}

// Palette returns the palette new notes are drawn from.
func (b *Board) Palette() domain.Palette {
	return b.palette
}

// Notes returns a copy of the collection in display order.
func (b *Board) Notes() []domain.Note {
	out := make([]domain.Note, len(b.notes))
	copy(out, b.notes)
	return out
}

// Len returns the number of notes.
func (b *Board) Len() int {
	return len(b.notes)
}

// Note returns the note with the given id.
func (b *Board) Note(id string) (domain.Note, bool) {
	if i := b.indexOf(id); i >= 0 {
		return b.notes[i], true
	}
	return domain.Note{}, false
}

// Load replaces the in-memory collection with the persisted one. On any
// failure the board is left empty and usable; the error is returned for
// reporting only.
func (b *Board) Load(ctx context.Context) error {
	start := time.Now()
	notes, err := b.store.Load(ctx)
	if notes == nil || err != nil {
		notes = []domain.Note{}
	}
	b.notes = notes
	b.drag = nil
	b.emit(ctx, "load", start, err, map[string]any{"notes": len(notes)})
	if err != nil {
		return fmt.Errorf("loading board: %w", err)
	}
	return nil
}

// Reload picks up notes another writer stored. It reports false and leaves
// the board as is when the stored notes match the board or cannot be read.
func (b *Board) Reload(ctx context.Context) (bool, error) {
	start := time.Now()
	notes, err := b.store.Load(ctx)
	if err != nil {
		b.emit(ctx, "reload", start, err, nil)
		return false, fmt.Errorf("reloading board: %w", err)
	}
	if slices.Equal(notes, b.notes) {
		return false, nil
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	b.notes = notes
	b.drag = nil
	b.emit(ctx, "reload", start, nil, map[string]any{"notes": len(notes)})
	return true, nil
}

// Save writes the whole collection to the store.
func (b *Board) Save(ctx context.Context) error {
	if err := b.store.Save(ctx, b.notes); err != nil {
		return fmt.Errorf("saving board: %w", err)
	}
	return nil
}

// AddNote appends a note with a random position inside the viewport and a
// random palette colour. Whitespace-only text returns ErrEmptyText and
// changes nothing. If saving fails the note is still on the board and the
// save error is returned alongside it.
func (b *Board) AddNote(ctx context.Context, text string) (domain.Note, error) {
	start := time.Now()
	if !domain.HasText(text) {
		return domain.Note{}, ErrEmptyText
	}

	note := domain.Note{
		ID:   b.newID(),
		Text: text,
		Position: domain.Position{
			Top:  placement(b.rng.Float64(), b.viewport.Height, b.noteHeight),
			Left: placement(b.rng.Float64(), b.viewport.Width, b.noteWidth),
		},
		Color: b.palette[b.rng.IntN(len(b.palette))],
	}
	b.notes = append(b.notes, note)

	err := b.Save(ctx)
	b.emit(ctx, "add", start, err, map[string]any{"note_id": note.ID, "color": string(note.Color)})
	return note, err
}

// DeleteNote removes the note with id. It reports whether a note was
// removed; a missing id is a silent no-op.
func (b *Board) DeleteNote(ctx context.Context, id string) (bool, error) {
	start := time.Now()
	i := b.indexOf(id)
	if i < 0 {
		return false, nil
	}
	b.notes = append(b.notes[:i], b.notes[i+1:]...)
	if b.drag != nil && b.drag.NoteID == id {
		b.drag = nil
	}

	err := b.Save(ctx)
	b.emit(ctx, "delete", start, err, map[string]any{"note_id": id})
	return true, err
}

// Clear removes every note.
func (b *Board) Clear(ctx context.Context) (int, error) {
	start := time.Now()
	n := len(b.notes)
	b.notes = []domain.Note{}
	b.drag = nil

	err := b.Save(ctx)
	b.emit(ctx, "clear", start, err, map[string]any{"removed": n})
	return n, err
}

// Box returns the rendered rectangle of note. Positions are truncated to
// whole cells, the same way the note is drawn.
func (b *Board) Box(note domain.Note) Box {
	return Box{
		Top:    math.Floor(note.Position.Top),
		Left:   math.Floor(note.Position.Left),
		Width:  float64(b.noteWidth),
		Height: float64(b.noteHeight),
	}
}

// HitTest returns the topmost note whose box contains the point.
func (b *Board) HitTest(x, y float64) (domain.Note, bool) {
	for i := len(b.notes) - 1; i >= 0; i-- {
		if b.Box(b.notes[i]).Contains(x, y) {
			return b.notes[i], true
		}
	}
	return domain.Note{}, false
}

func (b *Board) indexOf(id string) int {
	for i := range b.notes {
		if b.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) emit(ctx context.Context, name string, start time.Time, err error, fields map[string]any) {
	b.observer.ObserveBoard(ctx, Event{
		Name:      name,
		Duration:  time.Since(start),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: start,
	})
}
