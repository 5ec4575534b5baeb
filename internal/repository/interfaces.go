// Package repository persists opaque snapshot blobs and sync-server
// accounts in SQLite.
package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// StoredSnapshot is a persisted snapshot blob plus its save timestamp.
// The engine treats data as opaque; only last_saved_at is interpreted,
// by the sync coordinator.
type StoredSnapshot struct {
	Scope       string // "local" on a device, a user ID on the sync server
	Data        []byte // JSON-encoded domain.Snapshot
	LastSavedAt int64  // epoch-ms
}

// User is a sync-server account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Token is a bearer credential issued at login.
type Token struct {
	Token     string
	UserID    string
	CreatedAt time.Time
}

type SnapshotRepo interface {
	Get(ctx context.Context, scope string) (*StoredSnapshot, error)
	Put(ctx context.Context, snap *StoredSnapshot) error
	Delete(ctx context.Context, scope string) error
}

type UserRepo interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type TokenRepo interface {
	Create(ctx context.Context, t *Token) error
	Resolve(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) error
}
