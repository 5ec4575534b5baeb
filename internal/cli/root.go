// Package cli wires the engine, persistence and sync layers into the
// mindmirror command tree.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mindmirror/mindmirror/internal/db"
	"github.com/mindmirror/mindmirror/internal/engine"
	"github.com/mindmirror/mindmirror/internal/persist"
	"github.com/mindmirror/mindmirror/internal/remote"
	"github.com/mindmirror/mindmirror/internal/repository"
)

// App holds everything CLI commands need: the tiered local store the
// engine state round-trips through, engine policy, and the repositories
// the serve command exposes over HTTP.
type App struct {
	Store  *persist.Tiered
	Engine engine.Config
	Logger *slog.Logger

	// SessionPath is where the login token lives between invocations.
	SessionPath string
	// RemoteURL is the sync server base URL; empty disables sync commands.
	RemoteURL string
	// NewRemote builds a sync client; swapped out in tests.
	NewRemote func(baseURL, token string) *remote.Client

	// Repositories and transaction boundary for the embedded sync server.
	Snapshots repository.SnapshotRepo
	Users     repository.UserRepo
	Tokens    repository.TokenRepo
	UoW       db.UnitOfWork

	// IsInteractive reports whether stdin is a terminal; prompts are only
	// shown when it is.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "mindmirror" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "mindmirror",
		Short: "Hierarchical time tracking with alignment scoring",
	}

	root.AddCommand(
		newGoalCmd(app),
		newLinkCmd(app),
		newUnlinkCmd(app),
		newStartCmd(app),
		newStopCmd(app),
		newNoteCmd(app),
		newAdjustCmd(app),
		newStatusCmd(app),
		newTreeCmd(app),
		newEventsCmd(app),
		newWatchCmd(app),
		newExportCmd(app),
		newRestoreCmd(app),
		newSyncCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newServeCmd(app),
	)

	return root
}
