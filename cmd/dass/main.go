// cmd/dass/main.go
//
// This is the entry point for the dass CLI.
// When you run `dass` from any directory, this is what executes.
//
// Flow:
// 1. Load .env (if any) so DASS_BACKEND_URL can come from a file
// 2. Create .dass/ in the working directory and read its config
// 3. Open the log file and launch the TUI

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kingrea/dass-check/internal/config"
	"github.com/kingrea/dass-check/internal/logging"
	"github.com/kingrea/dass-check/internal/tui"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	// The working directory holds .dass/ with config and logs
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitDir(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .dass directory: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.NewConfig(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := logging.New(cfg.LogsDir(), cfg.LogLevel())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}

	app, err := tui.NewApp(cfg, tui.WithLogger(logger))
	if err != nil {
		_ = closeLog()
		fmt.Fprintf(os.Stderr, "Error starting: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(), // Use alternate screen buffer (like vim does)
	)

	// Run blocks until the user quits
	_, runErr := p.Run()
	if runErr != nil {
		logger.Error("tui exited with error", zap.Error(runErr))
	}
	_ = closeLog()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", runErr)
		os.Exit(1)
	}
}
