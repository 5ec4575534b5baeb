package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindmirror/mindmirror/internal/repository"
	"github.com/mindmirror/mindmirror/internal/testutil"
)

func newTokenFixture(t *testing.T) (*repository.SQLiteTokenRepo, context.Context) {
	t.Helper()
	database := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(database)
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &repository.User{
		ID: "u-1", Email: "ada@example.com", PasswordHash: "h", CreatedAt: time.Now(),
	}))
	return repository.NewSQLiteTokenRepo(database), ctx
}

func TestTokenRepo_CreateAndResolve(t *testing.T) {
	repo, ctx := newTokenFixture(t)

	issued := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &repository.Token{
		Token: "tok-abc", UserID: "u-1", CreatedAt: issued,
	}))

	got, err := repo.Resolve(ctx, "tok-abc")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.UserID)
	assert.True(t, got.CreatedAt.Equal(issued))
}

func TestTokenRepo_ResolveUnknownReturnsNotFound(t *testing.T) {
	repo, ctx := newTokenFixture(t)

	_, err := repo.Resolve(ctx, "tok-nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTokenRepo_CreateRequiresExistingUser(t *testing.T) {
	repo, ctx := newTokenFixture(t)

	err := repo.Create(ctx, &repository.Token{Token: "tok-x", UserID: "ghost", CreatedAt: time.Now()})
	assert.Error(t, err)
}

func TestTokenRepo_Delete(t *testing.T) {
	repo, ctx := newTokenFixture(t)

	require.NoError(t, repo.Create(ctx, &repository.Token{
		Token: "tok-abc", UserID: "u-1", CreatedAt: time.Now(),
	}))
	require.NoError(t, repo.Delete(ctx, "tok-abc"))

	_, err := repo.Resolve(ctx, "tok-abc")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTokenRepo_DeleteByUserRemovesAllSessions(t *testing.T) {
	repo, ctx := newTokenFixture(t)

	require.NoError(t, repo.Create(ctx, &repository.Token{Token: "tok-1", UserID: "u-1", CreatedAt: time.Now()}))
	require.NoError(t, repo.Create(ctx, &repository.Token{Token: "tok-2", UserID: "u-1", CreatedAt: time.Now()}))

	require.NoError(t, repo.DeleteByUser(ctx, "u-1"))

	_, err := repo.Resolve(ctx, "tok-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.Resolve(ctx, "tok-2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
