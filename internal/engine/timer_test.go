package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindmirror/mindmirror/internal/domain"
	"github.com/mindmirror/mindmirror/internal/engine"
	"github.com/mindmirror/mindmirror/internal/testutil"
)

func TestStartTimer_FirstStartGetsInitiationNote(t *testing.T) {
	e := newEnv()
	id := testutil.AddGoal(e.State, "Deep Work")

	e.StartTimer(id, "")
	task := e.Task(id)
	require.True(t, task.IsRunning)
	require.NotNil(t, task.RunningInterval)
	require.Len(t, task.RunningInterval.Notes, 1)

	note := task.RunningInterval.Notes[0]
	assert.Equal(t, domain.NoteStart, note.Type)
	assert.Equal(t, "Goal initiated at 2025-06-01 09:00:00", note.Content)
}

func TestStartTimer_RestartNoteMentionsLastWorked(t *testing.T) {
	e := newEnv()
	id := testutil.AddGoal(e.State, "Deep Work")

	e.track(t, id, 60)
	e.clock.Advance(2 * time.Hour)
	e.StartTimer(id, "")

	note := e.Task(id).RunningInterval.Notes[0]
	assert.Contains(t, note.Content, "Timer started at")
	assert.Contains(t, note.Content, "2h ago")
}

func TestStartTimer_ExplicitNoteAndRunningNoOp(t *testing.T) {
	e := newEnv()
	id := testutil.AddGoal(e.State, "Deep Work")

	e.StartTimer(id, "sprint one")
	assert.Equal(t, "sprint one", e.Task(id).RunningInterval.Notes[0].Content)

	start := e.Task(id).StartTime
	e.clock.Advance(time.Minute)
	e.StartTimer(id, "again")
	assert.Equal(t, start, e.Task(id).StartTime, "second start is a no-op")
	assert.Len(t, e.Task(id).RunningInterval.Notes, 1)
}

func TestTick_NeverDoubleCounts(t *testing.T) {
	e := newEnv()
	id := testutil.AddGoal(e.State, "Deep Work")

	e.StartTimer(id, "")
	for i := 0; i < 5; i++ {
		e.clock.Advance(time.Second)
		e.Tick(id)
	}
	assert.EqualValues(t, 5, e.Task(id).TimeSpent)

	// Stop after three more seconds: total is exactly 8, not 5+8.
	e.clock.Advance(3 * time.Second)
	result, err := e.StopTimer(id, domain.PlainStop(""))
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Elapsed)
	assert.EqualValues(t, 8, e.Task(id).TimeSpent)
}

func TestStopTimer_PlainCommitRecordsIntervalAndNotes(t *testing.T) {
	e := newEnv()
	id := testutil.AddGoal(e.State, "Deep Work")

	e.StartTimer(id, "")
	e.clock.Advance(120 * time.Second)
	result, err := e.StopTimer(id, domain.PlainStop("finished the draft"))
	require.NoError(t, err)
	assert.EqualValues(t, 120, result.Elapsed)
	assert.Equal(t, id, result.CommittedTo)

	task := e.Task(id)
	assert.False(t, task.IsRunning)
	assert.Zero(t, task.StartTime)
	assert.Nil(t, task.RunningInterval)
	require.Len(t, task.Intervals, 1)

	iv := task.Intervals[0]
	assert.EqualValues(t, 120, iv.Duration)
	require.Len(t, iv.Notes, 2)
	assert.Equal(t, domain.NoteStart, iv.Notes[0].Type)
	assert.Equal(t, domain.NoteStop, iv.Notes[1].Type)
	assert.Equal(t, "finished the draft", iv.Notes[1].Content)
}

func TestStopTimer_StoppedTaskIsNoOp(t *testing.T) {
	e := newEnv()
	id := testutil.AddGoal(e.State, "Deep Work")

	result, err := e.StopTimer(id, domain.PlainStop(""))
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestStopTimer_NoteOnlyKeepsRunning(t *testing.T) {
	e := newEnv()
	id := testutil.AddGoal(e.State, "Deep Work")

	e.StartTimer(id, "")
	e.clock.Advance(30 * time.Second)
	result, err := e.StopTimer(id, domain.AddNoteOnly("midpoint check-in"))
	require.NoError(t, err)
	require.NotNil(t, result)

	task := e.Task(id)
	assert.True(t, task.IsRunning)
	notes := task.RunningInterval.Notes
	assert.Equal(t, "midpoint check-in", notes[len(notes)-1].Content)
}

func TestStopTimer_AllocateRejectsNonChildren(t *testing.T) {
	e := newEnv()
	root := testutil.AddGoal(e.State, "Root")
	testutil.AddChild(e.State, root, "Child")
	stranger := testutil.AddGoal(e.State, "Stranger")

	e.StartTimer(root, "")
	e.clock.Advance(time.Minute)
	_, err := e.StopTimer(root, domain.AllocateExisting(stranger, ""))
	require.Error(t, err)
	assert.True(t, e.Task(root).IsRunning, "failed allocation leaves the timer running")
}

func TestStopTimer_CreateNewChildCommitsAndLinks(t *testing.T) {
	e := newEnv()
	root := testutil.AddGoal(e.State, "Root")

	e.StartTimer(root, "")
	e.clock.Advance(45 * time.Second)
	result, err := e.StopTimer(root, domain.CreateNew("Emergent Task", "came up mid-session"))
	require.NoError(t, err)
	require.NotEmpty(t, result.CreatedNodeID)
	assert.Equal(t, result.CreatedNodeID, result.CommittedTo)

	child := e.Task(result.CreatedNodeID)
	assert.Equal(t, "Emergent Task", child.Name)
	assert.EqualValues(t, 45, child.TimeSpent)
	assert.Equal(t, root, e.Parent(result.CreatedNodeID))
	assert.EqualValues(t, 45, e.AggregatedSeconds(root))
}

func TestStopTimer_ReportsSimultaneousRunningChildren(t *testing.T) {
	e := newEnv()
	root := testutil.AddGoal(e.State, "Root")
	child := testutil.AddChild(e.State, root, "Child")

	e.StartTimer(child, "")
	e.StartTimer(root, "")
	e.clock.Advance(time.Minute)

	result, err := e.StopTimer(root, domain.PlainStop(""))
	require.NoError(t, err)
	require.Len(t, result.Simultaneous, 1)
	assert.Equal(t, "Child", result.Simultaneous[0].Name)
	assert.True(t, e.Task(child).IsRunning, "the child's timer is reported, not stopped")
}

func TestAdjustTime_RequiresNoteAndNonZeroDelta(t *testing.T) {
	e := newEnv()
	id := testutil.AddGoal(e.State, "Deep Work")

	assert.ErrorIs(t, e.AdjustTime(id, 60, ""), engine.ErrNoteRequired)
	assert.ErrorIs(t, e.AdjustTime(id, 0, "noop"), engine.ErrEmptyAdjustment)
}

func TestAdjustTime_ClampsAtZeroAndRecordsAppliedDelta(t *testing.T) {
	e := newEnv()
	id := testutil.AddGoal(e.State, "Deep Work")

	e.track(t, id, 100)
	require.NoError(t, e.AdjustTime(id, -250, "logged on the wrong goal"))

	task := e.Task(id)
	assert.EqualValues(t, 0, task.TimeSpent, "downward adjustment clamps at zero")

	iv := task.Intervals[len(task.Intervals)-1]
	assert.True(t, iv.IsAdjustment)
	assert.EqualValues(t, -100, iv.Duration, "interval records the applied delta, not the requested one")
	assert.EqualValues(t, task.TimeSpent, task.DirectSeconds(), "interval sum stays consistent")
}

func TestAdjustTime_RollsUpAncestors(t *testing.T) {
	e := newEnv()
	root := testutil.AddGoal(e.State, "Root")
	child := testutil.AddChild(e.State, root, "Child")

	require.NoError(t, e.AdjustTime(child, 300, "offline work"))
	assert.EqualValues(t, 300, e.AggregatedSeconds(root))
	assert.EqualValues(t, 300, e.Task(root).TimeSpent, "rollup writes the stored aggregate")
}
