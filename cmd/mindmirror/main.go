package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/mindmirror/mindmirror/internal/cli"
	"github.com/mindmirror/mindmirror/internal/db"
	"github.com/mindmirror/mindmirror/internal/engine"
	"github.com/mindmirror/mindmirror/internal/persist"
	"github.com/mindmirror/mindmirror/internal/remote"
	"github.com/mindmirror/mindmirror/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Data directory: env var or default ~/.mindmirror
	dataDir := os.Getenv("MINDMIRROR_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".mindmirror")
	}

	dbPath := os.Getenv("MINDMIRROR_DB")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "mindmirror.db")
	}

	logger := newLogger()

	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	snapshotRepo := repository.NewSQLiteSnapshotRepo(database)

	store := persist.NewTiered(
		persist.NewSQLiteStore(snapshotRepo),
		persist.NewFileStore(filepath.Join(dataDir, "snapshot.json")),
		nil,
		logger,
	)

	app := &cli.App{
		Store:       store,
		Engine:      engine.DefaultConfig(),
		Logger:      logger,
		SessionPath: filepath.Join(dataDir, "session.json"),
		RemoteURL:   os.Getenv("MINDMIRROR_REMOTE"),
		NewRemote:   remote.NewClient,
		Snapshots:   snapshotRepo,
		Users:       repository.NewSQLiteUserRepo(database),
		Tokens:      repository.NewSQLiteTokenRepo(database),
		UoW:         db.NewSQLiteUnitOfWork(database),
	}
	app.Engine.Logger = logger

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// newLogger builds the process logger. Level defaults to warn so command
// output stays clean; MINDMIRROR_LOG=debug|info opens it up.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	switch os.Getenv("MINDMIRROR_LOG") {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
