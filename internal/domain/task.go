package domain

// Note is a timestamped annotation attached to an interval.
type Note struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	CreatedAt int64    `json:"createdAt"` // epoch-ms
	Type      NoteType `json:"type"`
}

// Interval is an immutable historical record of tracked time. A negative
// Duration records a downward manual adjustment so that the sum of interval
// durations always equals the time actually credited.
type Interval struct {
	Start                 int64  `json:"start"`         // epoch-ms
	End                   int64  `json:"end,omitempty"` // epoch-ms; 0 while open
	Duration              int64  `json:"duration"`      // whole seconds
	Notes                 []Note `json:"notes,omitempty"`
	IsAdjustment          bool   `json:"isAdjustment,omitempty"`
	IsAllocation          bool   `json:"isAllocation,omitempty"`
	IsSubnodeContribution bool   `json:"isSubnodeContribution,omitempty"`
}

// RunningInterval accumulates notes for the currently open tracking period.
type RunningInterval struct {
	Start int64  `json:"start"` // epoch-ms
	Notes []Note `json:"notes"`
}

// Task is the time-tracking record paired with a node. TimeSpent holds the
// node's aggregated seconds (own direct time plus all descendants', written
// by the rollup engine).
type Task struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	TimeSpent       int64            `json:"timeSpent"`
	IsRunning       bool             `json:"isRunning"`
	StartTime       int64            `json:"startTime,omitempty"` // epoch-ms; 0 when stopped
	RunningInterval *RunningInterval `json:"runningInterval,omitempty"`
	Intervals       []Interval       `json:"intervals"`
	CreatedAt       int64            `json:"createdAt"`
	LastWorkedOn    int64            `json:"lastWorkedOn,omitempty"` // epoch-ms; 0 if never
}

// DirectSeconds sums the task's own interval durations, excluding intervals
// credited from subnodes.
func (t *Task) DirectSeconds() int64 {
	var sum int64
	for _, iv := range t.Intervals {
		if iv.IsSubnodeContribution {
			continue
		}
		sum += iv.Duration
	}
	return sum
}
