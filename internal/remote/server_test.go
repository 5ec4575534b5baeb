package remote_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindmirror/mindmirror/internal/domain"
	"github.com/mindmirror/mindmirror/internal/persist"
	"github.com/mindmirror/mindmirror/internal/remote"
	"github.com/mindmirror/mindmirror/internal/repository"
	"github.com/mindmirror/mindmirror/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database := testutil.NewTestDB(t)
	auth := remote.NewAuthService(
		repository.NewSQLiteUserRepo(database),
		repository.NewSQLiteTokenRepo(database),
		testutil.NewTestUoW(database),
	)
	srv := remote.NewServer(auth, repository.NewSQLiteSnapshotRepo(database), slog.New(slog.DiscardHandler))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestServer_LoginSaveLoadRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	client := remote.NewClient(ts.URL, "")
	userID, err := client.Login(ctx, "ada@example.com", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, userID)
	require.NotEmpty(t, client.Token())

	snap := domain.NewSnapshot()
	snap.GoalCounter = 3
	snap.LastSavedAt = 98765
	require.NoError(t, client.Save(ctx, userID, snap))

	got, err := client.Load(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.GoalCounter)
	assert.EqualValues(t, 98765, got.LastSavedAt)
}

func TestServer_LoginSignsUpThenVerifiesPassword(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	first := remote.NewClient(ts.URL, "")
	id1, err := first.Login(ctx, "ada@example.com", "hunter2")
	require.NoError(t, err)

	// Same credentials resolve to the same account.
	second := remote.NewClient(ts.URL, "")
	id2, err := second.Login(ctx, "ada@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	// Wrong password against the existing account is refused.
	third := remote.NewClient(ts.URL, "")
	_, err = third.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, remote.ErrAuthFailed)
}

func TestServer_LoadWithoutSnapshotReturnsNoSnapshot(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	client := remote.NewClient(ts.URL, "")
	userID, err := client.Login(ctx, "ada@example.com", "hunter2")
	require.NoError(t, err)

	_, err = client.Load(ctx, userID)
	assert.ErrorIs(t, err, persist.ErrNoSnapshot)
}

func TestServer_MissingTokenIsUnauthorized(t *testing.T) {
	ts := newTestServer(t)

	client := remote.NewClient(ts.URL, "")
	_, err := client.Load(context.Background(), "someone")
	assert.ErrorIs(t, err, remote.ErrAuthFailed)
}

func TestServer_CannotTouchAnotherUsersSnapshot(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	ada := remote.NewClient(ts.URL, "")
	adaID, err := ada.Login(ctx, "ada@example.com", "hunter2")
	require.NoError(t, err)
	require.NoError(t, ada.Save(ctx, adaID, domain.NewSnapshot()))

	eve := remote.NewClient(ts.URL, "")
	_, err = eve.Login(ctx, "eve@example.com", "sekrit")
	require.NoError(t, err)

	_, err = eve.Load(ctx, adaID)
	assert.ErrorIs(t, err, remote.ErrAuthFailed)
	err = eve.Save(ctx, adaID, domain.NewSnapshot())
	assert.ErrorIs(t, err, remote.ErrAuthFailed)
}

func TestServer_LogoutRevokesToken(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	client := remote.NewClient(ts.URL, "")
	userID, err := client.Login(ctx, "ada@example.com", "hunter2")
	require.NoError(t, err)

	token := client.Token()
	require.NoError(t, client.Logout(ctx))
	assert.Empty(t, client.Token())

	stale := remote.NewClient(ts.URL, token)
	_, err = stale.Load(ctx, userID)
	assert.ErrorIs(t, err, remote.ErrAuthFailed)
}

func TestServer_Health(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
