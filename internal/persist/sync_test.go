package persist

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindmirror/mindmirror/internal/domain"
	"github.com/mindmirror/mindmirror/internal/engine"
)

// fakeCloud is an in-memory CloudStore keyed by user.
type fakeCloud struct {
	snaps   map[string]*domain.Snapshot
	loadErr error
	saveErr error
	saves   int
}

func newFakeCloud() *fakeCloud {
	return &fakeCloud{snaps: map[string]*domain.Snapshot{}}
}

func (f *fakeCloud) Load(ctx context.Context, userID string) (*domain.Snapshot, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	snap, ok := f.snaps[userID]
	if !ok {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

func (f *fakeCloud) Save(ctx context.Context, userID string, snap *domain.Snapshot) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.snaps[userID] = snap
	return nil
}

func snapSavedAt(ts int64) *domain.Snapshot {
	snap := domain.NewSnapshot()
	snap.LastSavedAt = ts
	return snap
}

func TestSync_NoRemotePushesLocal(t *testing.T) {
	cloud := newFakeCloud()
	coord := NewCoordinator(cloud, discard())

	local := snapSavedAt(100)
	res, err := coord.Sync(context.Background(), "u-1", local)
	require.NoError(t, err)

	assert.Equal(t, "local", res.Source)
	assert.True(t, res.Pushed)
	assert.Same(t, local, cloud.snaps["u-1"])
}

func TestSync_RemoteNewerWinsWithoutPush(t *testing.T) {
	cloud := newFakeCloud()
	remote := snapSavedAt(200)
	cloud.snaps["u-1"] = remote
	coord := NewCoordinator(cloud, discard())

	res, err := coord.Sync(context.Background(), "u-1", snapSavedAt(100))
	require.NoError(t, err)

	assert.Equal(t, "remote", res.Source)
	assert.False(t, res.Pushed)
	assert.Same(t, remote, res.Snapshot)
	assert.Zero(t, cloud.saves)
}

func TestSync_LocalNewerPushes(t *testing.T) {
	cloud := newFakeCloud()
	cloud.snaps["u-1"] = snapSavedAt(100)
	coord := NewCoordinator(cloud, discard())

	local := snapSavedAt(200)
	res, err := coord.Sync(context.Background(), "u-1", local)
	require.NoError(t, err)

	assert.Equal(t, "local", res.Source)
	assert.True(t, res.Pushed)
	assert.Same(t, local, cloud.snaps["u-1"])
}

func TestSync_LocalStampSurvivesEngineRebuild(t *testing.T) {
	cloud := newFakeCloud()
	cloud.snaps["u-1"] = snapSavedAt(100)
	coord := NewCoordinator(cloud, discard())

	// The CLI rebuilds engine state from the stored snapshot before
	// syncing; the rebuilt copy must still carry the newer local stamp.
	cfg := engine.DefaultConfig()
	cfg.Logger = slog.New(slog.DiscardHandler)
	local := engine.FromSnapshot(snapSavedAt(200), cfg).Snapshot()

	res, err := coord.Sync(context.Background(), "u-1", local)
	require.NoError(t, err)
	assert.Equal(t, "local", res.Source)
	assert.True(t, res.Pushed)
	assert.EqualValues(t, 200, cloud.snaps["u-1"].LastSavedAt)
}

func TestSync_TieKeepsLocalWithoutPush(t *testing.T) {
	cloud := newFakeCloud()
	cloud.snaps["u-1"] = snapSavedAt(150)
	coord := NewCoordinator(cloud, discard())

	res, err := coord.Sync(context.Background(), "u-1", snapSavedAt(150))
	require.NoError(t, err)

	assert.Equal(t, "local", res.Source)
	assert.False(t, res.Pushed)
	assert.Zero(t, cloud.saves)
}

func TestSync_NilLocalIsAnError(t *testing.T) {
	coord := NewCoordinator(newFakeCloud(), discard())
	_, err := coord.Sync(context.Background(), "u-1", nil)
	assert.Error(t, err)
}

func TestSync_RemoteLoadFailureAborts(t *testing.T) {
	cloud := newFakeCloud()
	cloud.loadErr = errors.New("network down")
	coord := NewCoordinator(cloud, discard())

	_, err := coord.Sync(context.Background(), "u-1", snapSavedAt(100))
	assert.ErrorIs(t, err, cloud.loadErr)
}
