package board

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/alexanderramin/stickies/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPersister struct {
	saved   []domain.Note
	saves   int
	loadErr error
	saveErr error
	initial []domain.Note
}

func (m *memPersister) Load(context.Context) ([]domain.Note, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]domain.Note, len(m.initial))
	copy(out, m.initial)
	return out, nil
}

func (m *memPersister) Save(_ context.Context, notes []domain.Note) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append([]domain.Note(nil), notes...)
	return nil
}

type recordingObserver struct {
	events []Event
}

func (r *recordingObserver) ObserveBoard(_ context.Context, e Event) {
	r.events = append(r.events, e)
}

func (r *recordingObserver) names() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Name
	}
	return out
}

func newTestBoard(t *testing.T, p *memPersister, opts ...Option) *Board {
	t.Helper()
	base := []Option{
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithViewport(Viewport{Width: 120, Height: 40}),
	}
	return New(p, append(base, opts...)...)
}

func TestAddNote_AppendsAndSaves(t *testing.T) {
	p := &memPersister{}
	b := newTestBoard(t, p, WithIDGenerator(func() string { return "note-1" }))

	note, err := b.AddNote(context.Background(), "Buy milk")
	require.NoError(t, err)

	assert.Equal(t, "note-1", note.ID)
	assert.Equal(t, "Buy milk", note.Text)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, []domain.Note{note}, p.saved)
	assert.Contains(t, domain.MultiPalette, note.Color)
}

func TestAddNote_EmptyTextIsNoOp(t *testing.T) {
	p := &memPersister{}
	b := newTestBoard(t, p)

	for _, text := range []string{"", " ", "\t\n", "   \n  "} {
		_, err := b.AddNote(context.Background(), text)
		assert.ErrorIs(t, err, ErrEmptyText, "text %q", text)
	}
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, p.saves, "rejected adds must not write")
}

func TestAddNote_KeepsTextAsTyped(t *testing.T) {
	b := newTestBoard(t, &memPersister{})

	note, err := b.AddNote(context.Background(), "  padded  ")
	require.NoError(t, err)
	assert.Equal(t, "  padded  ", note.Text)
}

func TestAddNote_PositionWithinViewport(t *testing.T) {
	b := newTestBoard(t, &memPersister{}, WithNoteSize(24, 8))
	vp := b.Viewport()

	for i := 0; i < 500; i++ {
		note, err := b.AddNote(context.Background(), "n")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, note.Position.Top, 0.0)
		assert.LessOrEqual(t, note.Position.Top, float64(vp.Height-8))
		assert.GreaterOrEqual(t, note.Position.Left, 0.0)
		assert.LessOrEqual(t, note.Position.Left, float64(vp.Width-24))
	}
}

func TestAddNote_ViewportSmallerThanNote(t *testing.T) {
	b := newTestBoard(t, &memPersister{}, WithViewport(Viewport{Width: 10, Height: 3}))

	note, err := b.AddNote(context.Background(), "cramped")
	require.NoError(t, err)
	assert.Equal(t, domain.Position{Top: 0, Left: 0}, note.Position)
}

func TestAddNote_SinglePalette(t *testing.T) {
	b := newTestBoard(t, &memPersister{}, WithPalette(domain.SinglePalette))

	for i := 0; i < 20; i++ {
		note, err := b.AddNote(context.Background(), "x")
		require.NoError(t, err)
		assert.Equal(t, domain.ColorYellow, note.Color)
	}
}

func TestAddNote_UsesEveryPaletteColour(t *testing.T) {
	b := newTestBoard(t, &memPersister{})

	seen := map[domain.Color]bool{}
	for i := 0; i < 200; i++ {
		note, err := b.AddNote(context.Background(), "x")
		require.NoError(t, err)
		seen[note.Color] = true
	}
	assert.Len(t, seen, len(domain.MultiPalette))
}

func TestAddNote_UniqueIDs(t *testing.T) {
	b := newTestBoard(t, &memPersister{})

	ids := map[string]bool{}
	for i := 0; i < 50; i++ {
		note, err := b.AddNote(context.Background(), "x")
		require.NoError(t, err)
		assert.False(t, ids[note.ID], "duplicate id %s", note.ID)
		ids[note.ID] = true
	}
}

func TestAddNote_SaveFailureKeepsNote(t *testing.T) {
	boom := errors.New("disk full")
	b := newTestBoard(t, &memPersister{saveErr: boom})

	note, err := b.AddNote(context.Background(), "still here")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	got, ok := b.Note(note.ID)
	require.True(t, ok)
	assert.Equal(t, "still here", got.Text)
}

func TestDeleteNote(t *testing.T) {
	p := &memPersister{}
	b := newTestBoard(t, p)
	ctx := context.Background()

	a, err := b.AddNote(ctx, "a")
	require.NoError(t, err)
	c, err := b.AddNote(ctx, "c")
	require.NoError(t, err)

	removed, err := b.DeleteNote(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []domain.Note{c}, b.Notes())
	assert.Equal(t, []domain.Note{c}, p.saved)

	saves := p.saves
	removed, err = b.DeleteNote(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, saves, p.saves, "missing id must not write")
}

func TestDeleteNote_MonotonicUnderRepeats(t *testing.T) {
	b := newTestBoard(t, &memPersister{})
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		n, err := b.AddNote(ctx, "x")
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}

	prev := b.Len()
	for _, id := range append(ids, ids...) {
		_, err := b.DeleteNote(ctx, id)
		require.NoError(t, err)
		assert.LessOrEqual(t, b.Len(), prev)
		prev = b.Len()
	}
	assert.Equal(t, 0, b.Len())
}

func TestDeleteNote_EndsDragOfDeletedNote(t *testing.T) {
	b := newTestBoard(t, &memPersister{})
	ctx := context.Background()
	n, err := b.AddNote(ctx, "x")
	require.NoError(t, err)

	require.True(t, b.BeginDrag(n.ID, 1, 1, b.Box(n)))
	_, err = b.DeleteNote(ctx, n.ID)
	require.NoError(t, err)

	_, dragging := b.Dragging()
	assert.False(t, dragging)
}

func TestNotes_ReturnsCopy(t *testing.T) {
	b := newTestBoard(t, &memPersister{})
	_, err := b.AddNote(context.Background(), "original")
	require.NoError(t, err)

	notes := b.Notes()
	notes[0].Text = "mutated"

	assert.Equal(t, "original", b.Notes()[0].Text)
}

func TestLoad_RehydratesInOrder(t *testing.T) {
	initial := []domain.Note{
		{ID: "a", Text: "first", Color: domain.ColorBlue},
		{ID: "b", Text: "second", Color: domain.ColorPink},
	}
	b := newTestBoard(t, &memPersister{initial: initial})

	require.NoError(t, b.Load(context.Background()))
	assert.Equal(t, initial, b.Notes())
}

func TestLoad_FailureLeavesEmptyBoard(t *testing.T) {
	boom := errors.New("corrupt")
	b := newTestBoard(t, &memPersister{loadErr: boom})

	err := b.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, b.Len())

	_, err = b.AddNote(context.Background(), "usable")
	require.NoError(t, err)
}

func TestClear(t *testing.T) {
	p := &memPersister{}
	b := newTestBoard(t, p)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := b.AddNote(ctx, "x")
		require.NoError(t, err)
	}

	n, err := b.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, p.saved)
}

func TestHitTest_TopmostWins(t *testing.T) {
	initial := []domain.Note{
		{ID: "under", Position: domain.Position{Top: 5, Left: 5}},
		{ID: "over", Position: domain.Position{Top: 8, Left: 10}},
	}
	b := newTestBoard(t, &memPersister{initial: initial}, WithNoteSize(24, 8))
	require.NoError(t, b.Load(context.Background()))

	n, ok := b.HitTest(12, 9)
	require.True(t, ok)
	assert.Equal(t, "over", n.ID)

	n, ok = b.HitTest(6, 6)
	require.True(t, ok)
	assert.Equal(t, "under", n.ID)

	_, ok = b.HitTest(100, 100)
	assert.False(t, ok)
}

func TestBox_TruncatesToCells(t *testing.T) {
	b := newTestBoard(t, &memPersister{}, WithNoteSize(20, 6))

	box := b.Box(domain.Note{Position: domain.Position{Top: 3.9, Left: 7.2}})
	assert.Equal(t, Box{Top: 3, Left: 7, Width: 20, Height: 6}, box)
	assert.True(t, box.Contains(7, 3))
	assert.True(t, box.Contains(26, 8))
	assert.False(t, box.Contains(27, 8))
	assert.False(t, box.Contains(7, 9))
}

func TestObserver_ReceivesEvents(t *testing.T) {
	obs := &recordingObserver{}
	b := newTestBoard(t, &memPersister{}, WithObserver(obs))
	ctx := context.Background()

	require.NoError(t, b.Load(ctx))
	n, err := b.AddNote(ctx, "x")
	require.NoError(t, err)
	require.True(t, b.BeginDrag(n.ID, 0, 0, b.Box(n)))
	_, err = b.ContinueDrag(ctx, 50, 20)
	require.NoError(t, err)
	b.EndDrag()
	_, err = b.DeleteNote(ctx, n.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"load", "add", "drag_begin", "drag_move", "drag_end", "delete"}, obs.names())
	for _, e := range obs.events {
		assert.True(t, e.Success, e.Name)
	}
}
