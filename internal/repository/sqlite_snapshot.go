package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mindmirror/mindmirror/internal/db"
)

// SQLiteSnapshotRepo implements SnapshotRepo over a SQLite database.
type SQLiteSnapshotRepo struct {
	db db.DBTX
}

func NewSQLiteSnapshotRepo(dbtx db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: dbtx}
}

func (r *SQLiteSnapshotRepo) Get(ctx context.Context, scope string) (*StoredSnapshot, error) {
	query := `SELECT scope, data, last_saved_at FROM snapshots WHERE scope = ?`
	row := r.db.QueryRowContext(ctx, query, scope)

	var s StoredSnapshot
	var data string
	if err := row.Scan(&s.Scope, &data, &s.LastSavedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("snapshot %q: %w", scope, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}
	s.Data = []byte(data)
	return &s, nil
}

func (r *SQLiteSnapshotRepo) Put(ctx context.Context, snap *StoredSnapshot) error {
	query := `INSERT INTO snapshots (scope, data, last_saved_at) VALUES (?, ?, ?)
		ON CONFLICT(scope) DO UPDATE SET data = excluded.data, last_saved_at = excluded.last_saved_at`
	_, err := r.db.ExecContext(ctx, query, snap.Scope, string(snap.Data), snap.LastSavedAt)
	if err != nil {
		return fmt.Errorf("upserting snapshot %q: %w", snap.Scope, err)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) Delete(ctx context.Context, scope string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE scope = ?`, scope)
	if err != nil {
		return fmt.Errorf("deleting snapshot %q: %w", scope, err)
	}
	return nil
}
