package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mindmirror/mindmirror/internal/domain"
)

// SyncResult describes the outcome of one sync pass.
type SyncResult struct {
	// Source names which copy won: "local" or "remote".
	Source string
	// Snapshot is the winning copy. When Source is "remote" the caller
	// should replace its state with it.
	Snapshot *domain.Snapshot
	// Pushed reports whether the local copy was uploaded.
	Pushed bool
}

// Coordinator reconciles the local snapshot with a per-user remote copy
// using last-writer-wins on the save timestamp.
type Coordinator struct {
	cloud  CloudStore
	logger *slog.Logger
}

func NewCoordinator(cloud CloudStore, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{cloud: cloud, logger: logger}
}

// Sync compares local against the remote copy for userID. The newer copy
// wins; on a timestamp tie the local copy is kept without an upload.
func (c *Coordinator) Sync(ctx context.Context, userID string, local *domain.Snapshot) (*SyncResult, error) {
	if local == nil {
		return nil, errors.New("sync: no local snapshot")
	}

	remote, err := c.cloud.Load(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			return nil, fmt.Errorf("loading remote snapshot: %w", err)
		}
		c.logger.Info("no remote snapshot, synced using local data", "user", userID)
		if err := c.cloud.Save(ctx, userID, local); err != nil {
			return nil, fmt.Errorf("pushing local snapshot: %w", err)
		}
		return &SyncResult{Source: "local", Snapshot: local, Pushed: true}, nil
	}

	switch {
	case remote.LastSavedAt > local.LastSavedAt:
		c.logger.Info("remote snapshot is newer, adopting it",
			"user", userID,
			"remote", remote.LastSavedAt,
			"local", local.LastSavedAt)
		return &SyncResult{Source: "remote", Snapshot: remote}, nil
	case local.LastSavedAt > remote.LastSavedAt:
		c.logger.Info("local snapshot is newer, pushing it",
			"user", userID,
			"remote", remote.LastSavedAt,
			"local", local.LastSavedAt)
		if err := c.cloud.Save(ctx, userID, local); err != nil {
			return nil, fmt.Errorf("pushing local snapshot: %w", err)
		}
		return &SyncResult{Source: "local", Snapshot: local, Pushed: true}, nil
	default:
		return &SyncResult{Source: "local", Snapshot: local}, nil
	}
}
