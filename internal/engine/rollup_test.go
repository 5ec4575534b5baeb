package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindmirror/mindmirror/internal/domain"
	"github.com/mindmirror/mindmirror/internal/testutil"
)

func TestAggregatedSeconds_TwoMainNodesScenario(t *testing.T) {
	e := newEnv()
	main1 := testutil.AddGoal(e.State, "Main 1")
	c1 := testutil.AddChild(e.State, main1, "Child A")
	c2 := testutil.AddChild(e.State, main1, "Child B")
	main2 := testutil.AddGoal(e.State, "Main 2")
	testutil.AddChild(e.State, main2, "Child C")

	e.track(t, main1, 50)
	e.track(t, c1, 40)
	e.track(t, c2, 20)
	e.track(t, main2, 30)

	assert.EqualValues(t, 110, e.AggregatedSeconds(main1))
	assert.EqualValues(t, 30, e.AggregatedSeconds(main2))
	assert.Len(t, e.MainNodes(), 2)
}

func TestRollup_DeepTreeSumsChildrenAggregates(t *testing.T) {
	e := newDeepEnv()
	root := testutil.AddGoal(e.State, "Root")
	mid := testutil.AddChild(e.State, root, "Mid")
	leaf := testutil.AddChild(e.State, mid, "Leaf")

	e.track(t, root, 100)
	e.track(t, mid, 80)
	e.track(t, leaf, 40)

	assert.EqualValues(t, 220, e.AggregatedSeconds(root))
	assert.EqualValues(t, 120, e.AggregatedSeconds(mid))
}

func TestRollupAncestors_PropagatesExactDeltaAndIsIdempotent(t *testing.T) {
	e := newDeepEnv()
	root := testutil.AddGoal(e.State, "Root")
	mid := testutil.AddChild(e.State, root, "Mid")
	leaf := testutil.AddChild(e.State, mid, "Leaf")

	e.track(t, root, 100)
	e.track(t, mid, 80)
	e.track(t, leaf, 40)

	before := e.AggregatedSeconds(root)
	require.NoError(t, e.AdjustTime(leaf, 25, "forgot to start the timer"))
	assert.EqualValues(t, before+25, e.AggregatedSeconds(root), "delta reaches the root exactly")
	assert.EqualValues(t, 145, e.AggregatedSeconds(mid))

	// Re-running the rollup without further changes must not drift.
	e.RollupNode(root)
	e.RollupAncestors(leaf)
	assert.EqualValues(t, before+25, e.AggregatedSeconds(root))
}

func TestRollup_AllocationCreditsChildNotParent(t *testing.T) {
	e := newEnv()
	root := testutil.AddGoal(e.State, "Root")
	child := testutil.AddChild(e.State, root, "Child")

	e.StartTimer(root, "")
	e.clock.Advance(90 * time.Second)
	result, err := e.StopTimer(root, domain.AllocateExisting(child, ""))
	require.NoError(t, err)
	require.Equal(t, child, result.CommittedTo)

	assert.EqualValues(t, 90, e.Task(child).TimeSpent)
	assert.Empty(t, e.Task(root).Intervals, "parent records no interval for an allocated stop")
	assert.EqualValues(t, 90, e.AggregatedSeconds(root))
}

func TestDirectSeconds_ExcludesSubnodeContributionIntervals(t *testing.T) {
	task := &domain.Task{Intervals: []domain.Interval{
		{Duration: 40},
		{Duration: 60, IsSubnodeContribution: true},
		{Duration: -10, IsAdjustment: true},
	}}
	assert.EqualValues(t, 30, task.DirectSeconds())
}
