package engine

import (
	"github.com/mindmirror/mindmirror/internal/alignment"
)

// OverallAlignment scores actual vs. target time across every root node.
func (s *State) OverallAlignment() int {
	roots := s.MainNodes()
	if len(roots) == 0 {
		return 0
	}
	times := make([]alignment.RootTimes, 0, len(roots))
	for _, n := range roots {
		times = append(times, alignment.RootTimes{
			Actual: float64(s.AggregatedSeconds(n.ID)),
			Target: n.Size.TargetSeconds(),
		})
	}
	return alignment.Overall(times)
}

// InternalAlignment scores one main node's direct children against their
// size-derived targets.
func (s *State) InternalAlignment(mainID string) int {
	children := s.Children(mainID)
	times := make([]alignment.RootTimes, 0, len(children))
	for _, childID := range children {
		node := s.nodeIndex[childID]
		task := s.tasks[childID]
		if node == nil || task == nil {
			continue
		}
		times = append(times, alignment.RootTimes{
			Actual: float64(task.TimeSpent),
			Target: node.Size.TargetSeconds(),
		})
	}
	return alignment.Internal(times)
}

// TotalTrackedSeconds sums aggregated time over every root: the total
// tracked across all tasks without double-counting rolled-up subtrees.
func (s *State) TotalTrackedSeconds() int64 {
	var total int64
	for _, n := range s.MainNodes() {
		total += s.AggregatedSeconds(n.ID)
	}
	return total
}
