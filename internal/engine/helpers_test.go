package engine_test

import (
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mindmirror/mindmirror/internal/domain"
	"github.com/mindmirror/mindmirror/internal/engine"
	"github.com/mindmirror/mindmirror/internal/layout"
	"github.com/mindmirror/mindmirror/internal/testutil"
)

// env bundles a pinned-clock engine for tests that track time.
type env struct {
	*engine.State
	clock *testutil.FixedClock
}

func newEnv() *env {
	st, clock := testutil.NewTestState()
	return &env{State: st, clock: clock}
}

// newDeepEnv lifts the link-depth policy so tests can build trees deeper
// than the default two levels.
func newDeepEnv() *env {
	clock := testutil.NewFixedClock(testutil.TestEpoch)
	cfg := engine.DefaultConfig()
	cfg.MaxLinkDepth = 0
	cfg.Clock = clock.Now
	cfg.NewID = testutil.SequentialIDs()
	cfg.Logger = slog.New(slog.DiscardHandler)
	return &env{State: engine.NewState(cfg), clock: clock}
}

// newTestResolver seeds the layout resolver deterministically.
func newTestResolver() *layout.Resolver {
	return layout.NewResolver(rand.New(rand.NewSource(1)))
}

// track runs and stops a timer so the task accrues exactly the given
// seconds of direct time.
func (e *env) track(t *testing.T, id string, seconds int64) {
	t.Helper()
	e.StartTimer(id, "")
	e.clock.Advance(time.Duration(seconds) * time.Second)
	_, err := e.StopTimer(id, domain.PlainStop(""))
	require.NoError(t, err)
}
