package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mindmirror/mindmirror/internal/db"
)

// SQLiteTokenRepo implements TokenRepo over a SQLite database.
type SQLiteTokenRepo struct {
	db db.DBTX
}

func NewSQLiteTokenRepo(dbtx db.DBTX) *SQLiteTokenRepo {
	return &SQLiteTokenRepo{db: dbtx}
}

func (r *SQLiteTokenRepo) Create(ctx context.Context, t *Token) error {
	query := `INSERT INTO auth_tokens (token, user_id, created_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.Token, t.UserID, t.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting token: %w", err)
	}
	return nil
}

func (r *SQLiteTokenRepo) Resolve(ctx context.Context, token string) (*Token, error) {
	query := `SELECT token, user_id, created_at FROM auth_tokens WHERE token = ?`
	row := r.db.QueryRowContext(ctx, query, token)

	var t Token
	var createdAt string
	if err := row.Scan(&t.Token, &t.UserID, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("token: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning token: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	t.CreatedAt = parsed
	return &t, nil
}

func (r *SQLiteTokenRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("deleting token: %w", err)
	}
	return nil
}

func (r *SQLiteTokenRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("deleting tokens for user %s: %w", userID, err)
	}
	return nil
}
