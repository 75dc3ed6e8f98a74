package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/stickies/internal/cli"
	"github.com/alexanderramin/stickies/internal/config"
	"github.com/alexanderramin/stickies/internal/logging"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The terminal belongs to the board, so logs go to a file.
	logger, closer, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closer.Close()

	app := &cli.App{
		Config: cfg,
		Logger: logger,
	}
	defer app.Close()

	// Detect interactive terminal for the board entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
