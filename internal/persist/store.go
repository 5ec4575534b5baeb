// Package persist implements the engine's save-blob/load-blob contract:
// a two-tier local store (SQLite primary, JSON file fallback), snapshot
// schema migration, and the last-writer-wins sync coordinator.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mindmirror/mindmirror/internal/domain"
	"github.com/mindmirror/mindmirror/internal/repository"
)

// ErrNoSnapshot marks an empty store: nothing has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

// Store persists one snapshot blob.
type Store interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, snap *domain.Snapshot) error
}

// CloudStore persists one snapshot blob per user on a remote service.
type CloudStore interface {
	Load(ctx context.Context, userID string) (*domain.Snapshot, error)
	Save(ctx context.Context, userID string, snap *domain.Snapshot) error
}

// localScope keys the device's own copy in the snapshots table.
const localScope = "local"

// SQLiteStore is the primary local store, backed by the snapshot
// repository.
type SQLiteStore struct {
	repo repository.SnapshotRepo
}

func NewSQLiteStore(repo repository.SnapshotRepo) *SQLiteStore {
	return &SQLiteStore{repo: repo}
}

func (s *SQLiteStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	stored, err := s.repo.Get(ctx, localScope)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}
	return Decode(stored.Data)
}

func (s *SQLiteStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return s.repo.Put(ctx, &repository.StoredSnapshot{
		Scope:       localScope,
		Data:        data,
		LastSavedAt: snap.LastSavedAt,
	})
}

// FileStore is the secondary local store: a single JSON file used when the
// primary is unavailable.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	return Decode(data)
}

func (s *FileStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating fallback directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// Decode parses a snapshot blob and runs schema migration on it.
func Decode(data []byte) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return Migrate(&snap), nil
}

// Migrate brings a loaded snapshot to the current schema version. The
// current migration is identity plus a version stamp.
func Migrate(snap *domain.Snapshot) *domain.Snapshot {
	if snap.AppVersion != domain.AppVersion {
		snap.AppVersion = domain.AppVersion
	}
	return snap
}
