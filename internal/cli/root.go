package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/stickies/internal/board"
	"github.com/alexanderramin/stickies/internal/cli/formatter"
	"github.com/alexanderramin/stickies/internal/config"
	"github.com/alexanderramin/stickies/internal/db"
	"github.com/alexanderramin/stickies/internal/logging"
	"github.com/alexanderramin/stickies/internal/repository"
	"github.com/alexanderramin/stickies/internal/store"
	"github.com/spf13/cobra"
)

// defaultViewport is used to place notes added outside the board TUI.
var defaultViewport = board.Viewport{Width: 80, Height: 20}

// App holds the board and its storage for CLI commands. Board, Store and
// UoW may be set directly (tests); otherwise they are opened from Config on
// first use.
type App struct {
	Board  *board.Board
	Store  *store.NoteStore
	UoW    db.UnitOfWork
	Config config.Config
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	database *sql.DB
}

// NewRootCmd creates the top-level "stickies" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "stickies",
		Short:         "Sticky notes on a terminal board",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}
			app.loadBoard(cmd)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runBoard(cmd, app)
			}
			return printNotes(cmd, app)
		},
	}

	root.PersistentFlags().StringVar(&app.Config.Database.Path, "db", app.Config.Database.Path, "Path to the notes database")

	root.AddCommand(
		newListCmd(app),
		newAddCmd(app),
		newRemoveCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newRestoreCmd(app),
		newClearCmd(app),
		newBoardCmd(app),
	)

	return root
}

// Close releases the database opened by the App, if any.
func (a *App) Close() error {
	if a.database == nil {
		return nil
	}
	err := a.database.Close()
	a.database = nil
	return err
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return logging.Discard()
	}
	return a.Logger
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// open wires the sqlite-backed store and board when they were not injected.
func (a *App) open() error {
	if a.Board != nil {
		return nil
	}

	database, err := db.OpenDB(a.Config.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.database = database

	a.Store = store.NewNoteStore(repository.NewSQLiteKVRepo(database))
	a.UoW = db.NewSQLiteUnitOfWork(database)
	a.Board = board.New(a.Store,
		board.WithNoteSize(a.Config.Board.NoteWidth, a.Config.Board.NoteHeight),
		board.WithPalette(a.Config.Board.ColorPalette()),
		board.WithObserver(board.NewLogObserver(a.logger())),
		board.WithViewport(defaultViewport),
	)
	return nil
}

// loadBoard rehydrates the board. A corrupt snapshot is reported and the
// board starts empty.
func (a *App) loadBoard(cmd *cobra.Command) {
	err := a.Board.Load(commandContext(cmd))
	if err == nil {
		return
	}
	a.logger().Warn("board load failed", "error", err)
	if errors.Is(err, store.ErrCorruptSnapshot) {
		fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("warning: saved notes could not be read; starting with an empty board"))
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), formatter.Error(err))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
