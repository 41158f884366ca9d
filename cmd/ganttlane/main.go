package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"ganttlane/internal/cli"
	"ganttlane/internal/config"
	"ganttlane/internal/db"
	"ganttlane/internal/logging"
	"ganttlane/internal/repository"
	"ganttlane/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath, err := config.Path()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Open(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	if closeLog != nil {
		defer closeLog()
	}

	// Determine DB path: env var or default ~/.ganttlane/board.db
	dbPath := os.Getenv("GANTTLANE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".ganttlane", "board.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	app := &cli.App{
		Board:  service.NewBoardService(repository.NewSQLiteWorkItemRepo(database), logger),
		Config: cfg,
		Logger: logger,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
