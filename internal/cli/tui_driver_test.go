package cli

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/alexanderramin/stickies/internal/board"
	"github.com/alexanderramin/stickies/internal/config"
	"github.com/alexanderramin/stickies/internal/domain"
	"github.com/alexanderramin/stickies/internal/logging"
	"github.com/alexanderramin/stickies/internal/repository"
	"github.com/alexanderramin/stickies/internal/store"
	"github.com/alexanderramin/stickies/internal/teatest"
	"github.com/alexanderramin/stickies/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testApp wires an App backed by an in-memory DB with deterministic
// placement and ids.
func testApp(t *testing.T, opts ...board.Option) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	st := store.NewNoteStore(repository.NewSQLiteKVRepo(database))

	base := []board.Option{
		board.WithRand(rand.New(rand.NewPCG(1, 2))),
		board.WithViewport(defaultViewport),
	}
	return &App{
		Board:  board.New(st, append(base, opts...)...),
		Store:  st,
		UoW:    testutil.NewTestUoW(database),
		Config: config.Default(),
		Logger: logging.Discard(),
	}
}

// seedNotes stores notes as the saved snapshot and reloads the board.
func seedNotes(t *testing.T, app *App, notes ...domain.Note) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, app.Store.Save(ctx, notes))
	require.NoError(t, app.Board.Load(ctx))
}

type failingPersister struct{}

func (failingPersister) Load(context.Context) ([]domain.Note, error) { return nil, nil }
func (failingPersister) Save(context.Context, []domain.Note) error {
	return errors.New("disk full")
}

// TestDriver wraps teatest.Driver with board-specific inspection methods.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver at 120x40, so the board surface is
// 120x36 starting at screen row boardTop.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newBoardModel(context.Background(), app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) boardModel() boardModel {
	return d.Model.(boardModel)
}

// InputValue returns the text input content.
func (d *TestDriver) InputValue() string {
	return d.boardModel().input.Value()
}

// AlertOpen reports whether the modal notice is shown.
func (d *TestDriver) AlertOpen() bool {
	return d.boardModel().alert != nil
}

// Status returns the status line message and whether it is an error.
func (d *TestDriver) Status() (string, bool) {
	m := d.boardModel()
	return m.status, m.statusErr
}

// Dragging returns the id of the note being dragged, or "".
func (d *TestDriver) Dragging() string {
	s, ok := d.boardModel().board.Dragging()
	if !ok {
		return ""
	}
	return s.NoteID
}

// ScreenPoint converts a board cell to screen coordinates.
func ScreenPoint(x, y int) (int, int) {
	return x, y + boardTop
}
