package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/stickies/internal/cli/formatter"
	"github.com/alexanderramin/stickies/internal/importer"
	"github.com/alexanderramin/stickies/internal/store"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		format store.Format
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all notes as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := store.Encode(app.Board.Notes(), format)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Exported %d notes to %s", app.Board.Len(), output)))
			return nil
		},
	}

	cmd.Flags().VarP(newFormatFlag(&format, store.FormatJSON), "format", "f", "Output format (json, yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var format store.Format

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the board with notes from a JSON or YAML file",
		Long: "Replace the board with notes from a JSON or YAML file.\n" +
			"Only text is required per note; missing ids, positions and colours are filled in.\n" +
			"The current board is kept as a backup and can be brought back with \"stickies restore\".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := importer.LoadImportFile(args[0], format)
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			if err := importer.Validate(parsed); err != nil {
				return err
			}
			notes := importer.Convert(parsed, app.Board.Palette())

			ctx := commandContext(cmd)
			if err := store.Replace(ctx, app.UoW, notes); err != nil {
				return err
			}
			app.loadBoard(cmd)

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Imported %d notes", len(notes))))
			return nil
		},
	}

	cmd.Flags().VarP(newFormatFlag(&format, ""), "format", "f", "Input format (json, yaml); default from file extension")

	return cmd
}

func newRestoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Swap the board with the backup taken by the last import",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			backup, ok, err := app.Store.LoadBackup(ctx)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No backup to restore."))
				return nil
			}

			if err := store.Replace(ctx, app.UoW, backup); err != nil {
				return err
			}
			app.loadBoard(cmd)

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Restored %d notes", len(backup))))
			return nil
		},
	}
}

func newClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count := app.Board.Len()
			if count == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Board is already empty."))
				return nil
			}

			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete %d notes without --yes", count)
				}
				confirmed := false
				if err := confirmForm(fmt.Sprintf("Delete all %d notes?", count), &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}

			removed, err := app.Board.Clear(commandContext(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Deleted %d notes", removed)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func confirmForm(title string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Cancel").
				Value(value),
		),
	).WithTheme(stickiesHuhTheme()).WithShowHelp(false)
}
