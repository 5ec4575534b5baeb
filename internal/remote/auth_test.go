package remote

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindmirror/mindmirror/internal/repository"
	"github.com/mindmirror/mindmirror/internal/testutil"
)

func newAuth(t *testing.T) *AuthService {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewAuthService(
		repository.NewSQLiteUserRepo(database),
		repository.NewSQLiteTokenRepo(database),
		testutil.NewTestUoW(database),
	)
}

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	stored := hashPassword("hunter2")

	assert.True(t, verifyPassword(stored, "hunter2"))
	assert.False(t, verifyPassword(stored, "hunter3"))
	assert.False(t, verifyPassword("not-a-hash", "hunter2"))

	// Salting makes equal passwords hash differently.
	assert.NotEqual(t, stored, hashPassword("hunter2"))
}

func TestLogin_EmailIsNormalized(t *testing.T) {
	auth := newAuth(t)
	ctx := context.Background()

	id1, _, err := auth.Login(ctx, "  Ada@Example.COM ", "pw")
	require.NoError(t, err)

	id2, _, err := auth.Login(ctx, "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}

func TestLogin_EmptyCredentialsRefused(t *testing.T) {
	auth := newAuth(t)
	ctx := context.Background()

	_, _, err := auth.Login(ctx, "", "pw")
	assert.ErrorIs(t, err, ErrAuthFailed)
	_, _, err = auth.Login(ctx, "ada@example.com", "")
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestResolve_KnownAndUnknownTokens(t *testing.T) {
	auth := newAuth(t)
	ctx := context.Background()

	userID, token, err := auth.Login(ctx, "ada@example.com", "pw")
	require.NoError(t, err)
	require.False(t, strings.Contains(token, " "))

	resolved, err := auth.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, resolved)

	_, err = auth.Resolve(ctx, "bogus")
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestLogin_SignupRollsBackWhenTokenWriteFails(t *testing.T) {
	database := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(database)
	boom := errors.New("token table on fire")
	auth := NewAuthService(
		users,
		repository.NewSQLiteTokenRepo(database),
		// The user insert is the first write, the token insert the second.
		&testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: boom},
	)
	ctx := context.Background()

	_, _, err := auth.Login(ctx, "ada@example.com", "pw")
	require.ErrorIs(t, err, boom)

	// The sign-up must not survive without its credential.
	_, err = users.GetByEmail(ctx, "ada@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLogout_RevokesOnlyThatToken(t *testing.T) {
	auth := newAuth(t)
	ctx := context.Background()

	_, tok1, err := auth.Login(ctx, "ada@example.com", "pw")
	require.NoError(t, err)
	_, tok2, err := auth.Login(ctx, "ada@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, tok1))

	_, err = auth.Resolve(ctx, tok1)
	assert.ErrorIs(t, err, ErrAuthFailed)
	_, err = auth.Resolve(ctx, tok2)
	assert.NoError(t, err)
}
