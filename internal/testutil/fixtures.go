package testutil

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/mindmirror/mindmirror/internal/domain"
	"github.com/mindmirror/mindmirror/internal/engine"
)

// FixedClock returns a clock pinned to t; Advance moves it forward.
type FixedClock struct {
	t time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{t: t}
}

func (c *FixedClock) Now() time.Time {
	return c.t
}

func (c *FixedClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// SequentialIDs returns a generator producing "id-1", "id-2", ... so test
// assertions can name nodes deterministically.
func SequentialIDs() func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("id-%d", n.Add(1))
	}
}

// TestEpoch is the pinned start instant used across engine tests.
var TestEpoch = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// NewTestState builds an engine with a pinned clock and sequential IDs.
// Returns the state and its clock for advancing time mid-test.
func NewTestState() (*engine.State, *FixedClock) {
	clock := NewFixedClock(TestEpoch)
	cfg := engine.DefaultConfig()
	cfg.Clock = clock.Now
	cfg.NewID = SequentialIDs()
	cfg.Logger = slog.New(slog.DiscardHandler)
	return engine.NewState(cfg), clock
}

// StandardSize is the default bounding box used by fixtures: target 300s.
var StandardSize = domain.Size{Width: 200, Height: 150}

// AddGoal creates a goal with the standard box at an arbitrary position.
func AddGoal(st *engine.State, name string) string {
	return st.AddTask(name, domain.Position{X: 100, Y: 100}, StandardSize)
}

// AddChild creates a goal and links it under parent.
func AddChild(st *engine.State, parentID, name string) string {
	id := AddGoal(st, name)
	if !st.Link(parentID, id) {
		panic(fmt.Sprintf("fixture link %s -> %s rejected", parentID, id))
	}
	return id
}
