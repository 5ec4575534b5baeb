package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindmirror/mindmirror/internal/repository"
	"github.com/mindmirror/mindmirror/internal/testutil"
)

func TestSnapshotRepo_PutAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSnapshotRepo(database)
	ctx := context.Background()

	err := repo.Put(ctx, &repository.StoredSnapshot{
		Scope:       "local",
		Data:        []byte(`{"nodes":[]}`),
		LastSavedAt: 1700000000000,
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, "local", got.Scope)
	assert.JSONEq(t, `{"nodes":[]}`, string(got.Data))
	assert.EqualValues(t, 1700000000000, got.LastSavedAt)
}

func TestSnapshotRepo_PutOverwritesExistingScope(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSnapshotRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, &repository.StoredSnapshot{
		Scope: "local", Data: []byte(`{"v":1}`), LastSavedAt: 100,
	}))
	require.NoError(t, repo.Put(ctx, &repository.StoredSnapshot{
		Scope: "local", Data: []byte(`{"v":2}`), LastSavedAt: 200,
	}))

	got, err := repo.Get(ctx, "local")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got.Data))
	assert.EqualValues(t, 200, got.LastSavedAt)
}

func TestSnapshotRepo_ScopesAreIndependent(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSnapshotRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, &repository.StoredSnapshot{
		Scope: "user-a", Data: []byte(`{"who":"a"}`), LastSavedAt: 1,
	}))
	require.NoError(t, repo.Put(ctx, &repository.StoredSnapshot{
		Scope: "user-b", Data: []byte(`{"who":"b"}`), LastSavedAt: 2,
	}))

	a, err := repo.Get(ctx, "user-a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"who":"a"}`, string(a.Data))
}

func TestSnapshotRepo_GetMissingReturnsNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSnapshotRepo(database)

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSnapshotRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSnapshotRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, &repository.StoredSnapshot{
		Scope: "local", Data: []byte(`{}`), LastSavedAt: 1,
	}))
	require.NoError(t, repo.Delete(ctx, "local"))

	_, err := repo.Get(ctx, "local")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Deleting an absent row is not an error.
	assert.NoError(t, repo.Delete(ctx, "local"))
}
