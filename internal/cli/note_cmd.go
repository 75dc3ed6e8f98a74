package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/stickies/internal/board"
	"github.com/alexanderramin/stickies/internal/cli/formatter"
	"github.com/alexanderramin/stickies/internal/config"
	"github.com/alexanderramin/stickies/internal/domain"
	"github.com/spf13/cobra"
)

// resolveNoteID finds a note by full id or unique id prefix. A miss returns
// an empty id and no error.
func resolveNoteID(notes []domain.Note, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("note ID is required")
	}

	// 1. Exact match
	for _, n := range notes {
		if n.ID == input {
			return n.ID, nil
		}
	}

	// 2. Prefix match (case-insensitive)
	var matches []string
	for _, n := range notes {
		if strings.HasPrefix(strings.ToLower(n.ID), strings.ToLower(input)) {
			matches = append(matches, n.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("note ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func printNotes(cmd *cobra.Command, app *App) error {
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNoteList(app.Board.Notes(), app.Board.Palette()))
	return nil
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes in board order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printNotes(cmd, app)
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add TEXT...",
		Short: "Add a note at a random position",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Board.Viewport() == (board.Viewport{}) {
				app.Board.SetViewport(defaultViewport)
			}

			note, err := app.Board.AddNote(commandContext(cmd), strings.Join(args, " "))
			if errors.Is(err, board.ErrEmptyText) {
				if app.Config.Board.EmptyTextPolicy == config.PolicyAlert {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Nothing to add."))
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added note %s at %s",
				note.ShortID(), formatter.FormatPosition(note.Position))))
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a note by id or id prefix",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveNoteID(app.Board.Notes(), args[0])
			if err != nil {
				return err
			}
			if id == "" {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("No note matches %q.", args[0])))
				return nil
			}

			note, _ := app.Board.Note(id)
			if _, err := app.Board.DeleteNote(commandContext(cmd), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Deleted note %s", note.ShortID())))
			return nil
		},
	}
}

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, app)
		},
	}
}
