package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mindmirror/mindmirror/internal/engine"
)

// loadState reads the stored snapshot and rebuilds the engine state. An
// empty store yields a fresh state.
func (a *App) loadState(ctx context.Context) (*engine.State, error) {
	snap, err := a.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	if snap == nil {
		return engine.NewState(a.Engine), nil
	}
	return engine.FromSnapshot(snap, a.Engine), nil
}

// saveState persists the engine state back to the tiered store.
func (a *App) saveState(ctx context.Context, st *engine.State) error {
	if err := a.Store.Save(ctx, st.Snapshot()); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// withState runs fn against the loaded state, saving afterwards when fn
// succeeds.
func (a *App) withState(ctx context.Context, fn func(*engine.State) error) error {
	st, err := a.loadState(ctx)
	if err != nil {
		return err
	}
	if err := fn(st); err != nil {
		return err
	}
	return a.saveState(ctx, st)
}

// resolveGoalID maps user input to a goal ID: exact name match first
// (case-insensitive), then exact ID, then ID prefix.
func resolveGoalID(st *engine.State, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("goal name or ID is required")
	}

	for _, n := range st.Nodes() {
		if t := st.Task(n.ID); t != nil && strings.EqualFold(t.Name, input) {
			return n.ID, nil
		}
	}

	if st.Node(input) != nil {
		return input, nil
	}

	var matches []string
	for _, n := range st.Nodes() {
		if strings.HasPrefix(n.ID, input) {
			matches = append(matches, n.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("goal not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("goal ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// session is the on-disk login record.
type session struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

func (a *App) loadSession() (*session, error) {
	data, err := os.ReadFile(a.SessionPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}
	var s session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	return &s, nil
}

func (a *App) saveSession(s *session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(a.SessionPath), 0755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	if err := os.WriteFile(a.SessionPath, data, 0600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

func (a *App) clearSession() error {
	if err := os.Remove(a.SessionPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}
