package remote

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mindmirror/mindmirror/internal/db"
	"github.com/mindmirror/mindmirror/internal/repository"
)

// ErrAuthFailed covers both bad credentials and invalid tokens. Callers
// get no detail beyond this, deliberately.
var ErrAuthFailed = errors.New("authentication failed")

// AuthService issues and resolves bearer tokens. Logging in with an
// unknown email creates the account, matching the sign-in-or-sign-up
// behavior of the sync endpoint.
type AuthService struct {
	users  repository.UserRepo
	tokens repository.TokenRepo
	uow    db.UnitOfWork
}

func NewAuthService(users repository.UserRepo, tokens repository.TokenRepo, uow db.UnitOfWork) *AuthService {
	return &AuthService{users: users, tokens: tokens, uow: uow}
}

// Login authenticates email/password and returns the user ID and a fresh
// bearer token. Unknown emails are signed up on the spot; the sign-up and
// the token issue commit in one transaction so a failed login never leaves
// a user without a credential path.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", "", ErrAuthFailed
	}

	signup := false
	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		signup = true
		user = &repository.User{
			ID:           uuid.New().String(),
			Email:        email,
			PasswordHash: hashPassword(password),
			CreatedAt:    time.Now(),
		}
	case err != nil:
		return "", "", fmt.Errorf("looking up user: %w", err)
	default:
		if !verifyPassword(user.PasswordHash, password) {
			return "", "", ErrAuthFailed
		}
	}

	token := &repository.Token{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		CreatedAt: time.Now(),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if signup {
			if err := repository.NewSQLiteUserRepo(tx).Create(ctx, user); err != nil {
				return fmt.Errorf("creating user: %w", err)
			}
		}
		if err := repository.NewSQLiteTokenRepo(tx).Create(ctx, token); err != nil {
			return fmt.Errorf("creating token: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return user.ID, token.Token, nil
}

// Resolve maps a bearer token to its user ID.
func (s *AuthService) Resolve(ctx context.Context, token string) (string, error) {
	t, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrAuthFailed
		}
		return "", fmt.Errorf("resolving token: %w", err)
	}
	return t.UserID, nil
}

// Logout revokes a single token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.tokens.Delete(ctx, token)
}

// hashPassword returns "salt$digest" with a random 16-byte salt, both hex
// encoded.
func hashPassword(password string) string {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		panic(fmt.Sprintf("reading random salt: %v", err))
	}
	return hex.EncodeToString(salt) + "$" + digest(salt, password)
}

func verifyPassword(stored, password string) bool {
	saltHex, want, ok := strings.Cut(stored, "$")
	if !ok {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	got := digest(salt, password)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func digest(salt []byte, password string) string {
	h := sha256.New()
	h.Write(salt)
	h.Write([]byte(password))
	return hex.EncodeToString(h.Sum(nil))
}
