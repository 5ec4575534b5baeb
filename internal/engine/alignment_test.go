package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindmirror/mindmirror/internal/domain"
	"github.com/mindmirror/mindmirror/internal/testutil"
)

func TestOverallAlignment_UsesSizeDerivedTargets(t *testing.T) {
	e := newEnv()
	root := testutil.AddGoal(e.State, "Root") // 200x150 -> target 300s
	e.track(t, root, 150)

	assert.Equal(t, 50, e.OverallAlignment())

	// Growing the box raises the target and lowers the score.
	require.True(t, e.ResizeNode(root, domain.Size{Width: 300, Height: 200}, newTestResolver()))
	assert.Equal(t, 25, e.OverallAlignment())
}

func TestInternalAlignment_ScoresDirectChildrenOnly(t *testing.T) {
	e := newEnv()
	root := testutil.AddGoal(e.State, "Root")
	c1 := testutil.AddChild(e.State, root, "A")
	testutil.AddChild(e.State, root, "B")

	// Children targets sum to 600s; tracking 300 on one child is 50%.
	e.track(t, c1, 300)
	assert.Equal(t, 50, e.InternalAlignment(root))

	// Overworking past double the target floors at zero.
	e.track(t, c1, 1000)
	assert.Equal(t, 0, e.InternalAlignment(root))
}

func TestInternalAlignment_ChildlessRootIsVacuouslyAligned(t *testing.T) {
	e := newEnv()
	root := testutil.AddGoal(e.State, "Root")
	assert.Equal(t, 100, e.InternalAlignment(root))
}

func TestTotalTrackedSeconds_NoDoubleCounting(t *testing.T) {
	e := newEnv()
	root := testutil.AddGoal(e.State, "Root")
	child := testutil.AddChild(e.State, root, "Child")
	other := testutil.AddGoal(e.State, "Other")

	e.track(t, child, 100)
	e.track(t, root, 50)
	e.track(t, other, 25)

	assert.EqualValues(t, 175, e.TotalTrackedSeconds(),
		"rolled-up subtree time counts once")
}
