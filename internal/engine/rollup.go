package engine

// Rollup recomputes aggregated time from scratch rather than applying
// deltas: redundant work at this scale (fan-out ≤ 10, shallow depth) in
// exchange for immunity to drift.

// AggregatedSeconds reads a node's aggregated time without writing it:
// own direct interval time plus the aggregate of every child subtree.
// Leaves report their stored TimeSpent so that ticked-but-uncommitted
// running time is included.
func (s *State) AggregatedSeconds(id string) int64 {
	task := s.tasks[id]
	if task == nil {
		return 0
	}
	children := s.Children(id)
	if len(children) == 0 {
		return task.TimeSpent
	}
	total := task.DirectSeconds()
	for _, childID := range children {
		total += s.AggregatedSeconds(childID)
	}
	return total
}

// RollupNode writes a node's recomputed aggregate into its TimeSpent,
// recursing through the subtree so every intermediate node is refreshed.
// Leaves keep their stored TimeSpent, which is authoritative for them.
func (s *State) RollupNode(id string) int64 {
	task := s.tasks[id]
	if task == nil {
		return 0
	}
	children := s.Children(id)
	if len(children) == 0 {
		return task.TimeSpent
	}
	total := task.DirectSeconds()
	for _, childID := range children {
		total += s.RollupNode(childID)
	}
	task.TimeSpent = total
	return total
}

// RollupAncestors walks parent pointers from the changed node upward,
// recomputing each ancestor, so a change at any depth propagates to the
// root in O(depth) recomputations.
func (s *State) RollupAncestors(changedID string) {
	current := changedID
	for steps := 0; steps < maxAncestorWalk; steps++ {
		parentID := s.Parent(current)
		if parentID == "" {
			return
		}
		s.RollupNode(parentID)
		current = parentID
	}
	s.logger.Warn("rollup ancestor walk exceeded bound", "from", changedID)
}
