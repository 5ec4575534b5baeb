package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mindmirror/mindmirror/internal/domain"
)

// ErrBothStoresFailed is returned by Save when neither tier accepted the
// snapshot.
var ErrBothStoresFailed = errors.New("snapshot not persisted to any store")

// Tiered reads from and writes to a primary store, falling back to a
// secondary one when the primary fails. A successful write to either tier
// counts as persisted.
type Tiered struct {
	primary  Store
	fallback Store
	clock    func() time.Time
	logger   *slog.Logger
}

func NewTiered(primary, fallback Store, clock func() time.Time, logger *slog.Logger) *Tiered {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tiered{primary: primary, fallback: fallback, clock: clock, logger: logger}
}

// Load returns the stored snapshot, or (nil, nil) when neither tier holds
// one. A corrupt or unreadable primary falls through to the fallback.
func (t *Tiered) Load(ctx context.Context) (*domain.Snapshot, error) {
	snap, err := t.primary.Load(ctx)
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, ErrNoSnapshot) {
		t.logger.Warn("primary store load failed, trying fallback", "error", err)
	}
	snap, ferr := t.fallback.Load(ctx)
	if ferr == nil {
		return snap, nil
	}
	if errors.Is(ferr, ErrNoSnapshot) {
		if errors.Is(err, ErrNoSnapshot) {
			return nil, nil
		}
		return nil, err
	}
	return nil, fmt.Errorf("fallback store: %w", ferr)
}

// Save stamps the snapshot with the current app version and save time,
// then writes it to both tiers. It fails only when both writes fail.
func (t *Tiered) Save(ctx context.Context, snap *domain.Snapshot) error {
	snap.AppVersion = domain.AppVersion
	snap.LastSavedAt = t.clock().UnixMilli()

	perr := t.primary.Save(ctx, snap)
	if perr != nil {
		t.logger.Warn("primary store save failed", "error", perr)
	}
	ferr := t.fallback.Save(ctx, snap)
	if ferr != nil {
		t.logger.Warn("fallback store save failed", "error", ferr)
	}
	if perr != nil && ferr != nil {
		return fmt.Errorf("%w: primary: %v, fallback: %v", ErrBothStoresFailed, perr, ferr)
	}
	return nil
}
