package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/mindmirror/mindmirror/internal/domain"
)

var (
	// ErrNoteRequired rejects a manual time adjustment without a note.
	ErrNoteRequired = errors.New("a note is required")
	// ErrEmptyAdjustment rejects a zero time delta.
	ErrEmptyAdjustment = errors.New("time adjustment must be non-zero")
)

const timestampLayout = "2006-01-02 15:04:05"

// SimultaneousTimer reports a child that was still running when its main
// node's timer stopped.
type SimultaneousTimer struct {
	NodeID  string
	Name    string
	Elapsed int64 // seconds accrued since the child's last tick
}

// StopResult describes what a stop committed.
type StopResult struct {
	Elapsed       int64  // seconds
	CommittedTo   string // node the time was credited to
	CreatedNodeID string // set for StopCreateNew; position placement is the caller's job
	Simultaneous  []SimultaneousTimer
}

// StartTimer flips a task to running. Already-running tasks no-op. The
// fresh running interval is seeded with a start note: the explicit one, or
// an auto-generated summary of time since the task was last worked on.
func (s *State) StartTimer(id, note string) {
	task := s.tasks[id]
	if task == nil || task.IsRunning {
		return
	}
	now := s.now()
	nowMs := now.UnixMilli()

	if note == "" {
		note = s.autoStartNote(task, now)
	}
	task.IsRunning = true
	task.StartTime = nowMs
	task.RunningInterval = &domain.RunningInterval{
		Start: nowMs,
		Notes: []domain.Note{s.newNote(note, domain.NoteStart, nowMs)},
	}
	s.events.Append(domain.EventTimerStart, map[string]any{"taskId": id}, nowMs)
}

func (s *State) autoStartNote(task *domain.Task, now time.Time) string {
	stamp := now.Format(timestampLayout)
	if task.LastWorkedOn == 0 {
		return fmt.Sprintf("Goal initiated at %s", stamp)
	}
	ago := domain.FormatAgo(now.UnixMilli()/1000 - task.LastWorkedOn/1000)
	if ago == "" {
		ago = "moments"
	}
	return fmt.Sprintf("Timer started at %s (last worked on %s ago)", stamp, ago)
}

// Tick folds elapsed wall-clock time into TimeSpent and resets StartTime,
// so repeated ticks never double-count: total time is always committed
// intervals plus time since the last tick.
func (s *State) Tick(id string) {
	task := s.tasks[id]
	if task == nil || !task.IsRunning {
		return
	}
	nowMs := s.nowMillis()
	task.TimeSpent += (nowMs - task.StartTime) / 1000
	task.StartTime = nowMs
}

// StopTimer closes a running timer according to the request's mode. For a
// running main node it also reports any children whose timers were running
// simultaneously; the report is an aid, no time is merged or corrected.
func (s *State) StopTimer(id string, req domain.StopRequest) (*StopResult, error) {
	task := s.tasks[id]
	if task == nil || !task.IsRunning {
		return nil, nil
	}
	nowMs := s.nowMillis()

	if req.Mode == domain.StopNoteOnly {
		if req.Note != "" {
			s.AddNote(id, req.Note)
		}
		return &StopResult{}, nil
	}

	elapsed := (nowMs - task.StartTime) / 1000
	simultaneous := s.runningChildren(id, nowMs)

	var result *StopResult
	var err error
	switch req.Mode {
	case domain.StopPlain:
		result = s.stopPlain(task, req, elapsed, nowMs)
	case domain.StopAllocateExisting:
		result, err = s.stopAllocate(task, req, elapsed, nowMs)
	case domain.StopCreateNew:
		result, err = s.stopCreateNew(task, req, elapsed, nowMs)
	default:
		return nil, fmt.Errorf("unknown stop mode %q", req.Mode)
	}
	if err != nil {
		return nil, err
	}

	if len(simultaneous) > 0 {
		s.attachSimultaneousNote(s.tasks[result.CommittedTo], simultaneous, nowMs)
		result.Simultaneous = simultaneous
	}
	s.events.Append(domain.EventTimerStop, map[string]any{
		"taskId":   id,
		"duration": result.Elapsed,
	}, nowMs)
	return result, nil
}

// stopPlain commits the elapsed time to the stopped node itself and rolls
// up all ancestors.
func (s *State) stopPlain(task *domain.Task, req domain.StopRequest, elapsed, nowMs int64) *StopResult {
	interval := s.closeRunningInterval(task, elapsed, nowMs)
	if req.Note != "" {
		interval.Notes = append(interval.Notes, s.newNote(req.Note, domain.NoteStop, nowMs))
	}
	task.Intervals = append(task.Intervals, *interval)
	task.TimeSpent += elapsed
	s.clearRunning(task, nowMs)
	s.RollupAncestors(task.ID)
	return &StopResult{Elapsed: elapsed, CommittedTo: task.ID}
}

// stopAllocate credits the elapsed time to a named existing child. The
// parent's own time is untouched; the child records an allocation interval.
func (s *State) stopAllocate(task *domain.Task, req domain.StopRequest, elapsed, nowMs int64) (*StopResult, error) {
	if !s.IsMainNode(task.ID) {
		return nil, fmt.Errorf("allocation requires a main node with children")
	}
	child := s.tasks[req.SubnodeID]
	if child == nil || !contains(s.Children(task.ID), req.SubnodeID) {
		return nil, fmt.Errorf("allocation target %q is not a child of %q", req.SubnodeID, task.Name)
	}

	notes := []domain.Note{s.newNote(
		fmt.Sprintf("Allocated from %s", task.Name), domain.NoteAllocation, nowMs)}
	if req.Note != "" {
		notes = append(notes, s.newNote(req.Note, domain.NoteStop, nowMs))
	}
	child.Intervals = append(child.Intervals, domain.Interval{
		Start:        task.StartTime,
		End:          nowMs,
		Duration:     elapsed,
		Notes:        notes,
		IsAllocation: true,
	})
	child.TimeSpent += elapsed
	child.LastWorkedOn = nowMs

	s.clearRunning(task, nowMs)
	s.RollupAncestors(child.ID)
	return &StopResult{Elapsed: elapsed, CommittedTo: child.ID}, nil
}

// stopCreateNew creates a brand-new child, commits the elapsed time to it
// and reports the created node so the caller can place it on the canvas.
func (s *State) stopCreateNew(task *domain.Task, req domain.StopRequest, elapsed, nowMs int64) (*StopResult, error) {
	if s.rels[task.ID].HasParent() {
		return nil, fmt.Errorf("new-child allocation requires a main node")
	}
	if req.NewChildName == "" {
		return nil, fmt.Errorf("new-child allocation requires a name")
	}

	childID := s.AddTask(req.NewChildName, domain.Position{}, s.nodeIndex[task.ID].Size)
	if !s.Link(task.ID, childID) {
		s.Delete(childID, "")
		return nil, fmt.Errorf("could not attach new child to %q", task.Name)
	}

	child := s.tasks[childID]
	notes := []domain.Note{s.newNote(
		fmt.Sprintf("Created at stop of %s", task.Name), domain.NoteCreation, nowMs)}
	if req.Note != "" {
		notes = append(notes, s.newNote(req.Note, domain.NoteStop, nowMs))
	}
	child.Intervals = append(child.Intervals, domain.Interval{
		Start:        task.StartTime,
		End:          nowMs,
		Duration:     elapsed,
		Notes:        notes,
		IsAllocation: true,
	})
	child.TimeSpent += elapsed
	child.LastWorkedOn = nowMs

	s.clearRunning(task, nowMs)
	s.RollupAncestors(childID)
	return &StopResult{Elapsed: elapsed, CommittedTo: childID, CreatedNodeID: childID}, nil
}

func (s *State) closeRunningInterval(task *domain.Task, elapsed, nowMs int64) *domain.Interval {
	interval := &domain.Interval{
		Start:    task.StartTime,
		End:      nowMs,
		Duration: elapsed,
	}
	if task.RunningInterval != nil {
		interval.Start = task.RunningInterval.Start
		interval.Notes = task.RunningInterval.Notes
	}
	return interval
}

func (s *State) clearRunning(task *domain.Task, nowMs int64) {
	task.IsRunning = false
	task.StartTime = 0
	task.RunningInterval = nil
	task.LastWorkedOn = nowMs
}

// runningChildren reports the independently-accruing elapsed time of every
// running child under a main node.
func (s *State) runningChildren(id string, nowMs int64) []SimultaneousTimer {
	var out []SimultaneousTimer
	for _, childID := range s.Descendants(id) {
		child := s.tasks[childID]
		if child == nil || !child.IsRunning {
			continue
		}
		out = append(out, SimultaneousTimer{
			NodeID:  childID,
			Name:    child.Name,
			Elapsed: (nowMs - child.StartTime) / 1000,
		})
	}
	return out
}

// attachSimultaneousNote annotates the interval that received the stopped
// time with a summary of each still-running child. A reporting aid only;
// no time is merged.
func (s *State) attachSimultaneousNote(task *domain.Task, timers []SimultaneousTimer, nowMs int64) {
	if task == nil || len(task.Intervals) == 0 {
		return
	}
	content := "Simultaneous timers at stop:"
	for _, t := range timers {
		content += fmt.Sprintf(" %s running for %s;", t.Name, domain.FormatClock(t.Elapsed))
	}
	last := &task.Intervals[len(task.Intervals)-1]
	last.Notes = append(last.Notes, s.newNote(content, domain.NoteSimultaneousTimer, nowMs))
}

// AddNote appends a note to the running interval, opening an accumulator
// if none exists; it does not start the timer.
func (s *State) AddNote(id, content string) {
	task := s.tasks[id]
	if task == nil {
		return
	}
	nowMs := s.nowMillis()
	if task.RunningInterval == nil {
		task.RunningInterval = &domain.RunningInterval{Start: nowMs}
	}
	task.RunningInterval.Notes = append(task.RunningInterval.Notes,
		s.newNote(content, domain.NotePlain, nowMs))
}

// AdjustTime applies a manual delta (seconds, signed) to a task, recording
// a synthesized adjustment interval. The note is a blocking precondition.
// TimeSpent is floored at zero; the recorded duration is the delta that
// actually applied, keeping interval sums consistent with TimeSpent.
func (s *State) AdjustTime(id string, deltaSeconds int64, note string) error {
	task := s.tasks[id]
	if task == nil {
		return fmt.Errorf("unknown task %q", id)
	}
	if note == "" {
		return ErrNoteRequired
	}
	if deltaSeconds == 0 {
		return ErrEmptyAdjustment
	}

	nowMs := s.nowMillis()
	applied := deltaSeconds
	if task.TimeSpent+applied < 0 {
		applied = -task.TimeSpent
	}
	task.TimeSpent += applied

	abs := applied
	if abs < 0 {
		abs = -abs
	}
	task.Intervals = append(task.Intervals, domain.Interval{
		Start:        nowMs - abs*1000,
		End:          nowMs,
		Duration:     applied,
		Notes:        []domain.Note{s.newNote(note, domain.NoteAdjustment, nowMs)},
		IsAdjustment: true,
	})
	if task.IsRunning && task.RunningInterval != nil {
		task.RunningInterval.Start = nowMs
	}
	task.LastWorkedOn = nowMs
	s.RollupAncestors(id)
	return nil
}

func (s *State) newNote(content string, t domain.NoteType, nowMs int64) domain.Note {
	return domain.Note{
		ID:        s.newID(),
		Content:   content,
		CreatedAt: nowMs,
		Type:      t,
	}
}
