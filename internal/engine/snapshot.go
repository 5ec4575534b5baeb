package engine

import (
	"github.com/mindmirror/mindmirror/internal/domain"
)

// Snapshot captures the full engine state in persistable form. The
// returned snapshot aliases engine data; persist or marshal it before the
// next mutation.
func (s *State) Snapshot() *domain.Snapshot {
	return &domain.Snapshot{
		AppVersion:        domain.AppVersion,
		LastSavedAt:       s.lastSavedAt,
		Tasks:             s.tasks,
		Nodes:             s.nodes,
		Edges:             s.edges,
		NodeRelationships: s.rels,
		Achievements:      s.achievements,
		GoalCounter:       s.goalCounter,
		EventLog:          s.events.Export(),
	}
}

// FromSnapshot rebuilds engine state from a persisted snapshot. The
// collapse map is not persisted; it is re-derived from relationships and
// the most-recently-worked task.
func FromSnapshot(snap *domain.Snapshot, cfg Config) *State {
	s := NewState(cfg)
	if snap == nil {
		return s
	}
	if snap.Tasks != nil {
		s.tasks = snap.Tasks
	}
	if snap.NodeRelationships != nil {
		s.rels = snap.NodeRelationships
	}
	s.nodes = snap.Nodes
	for _, n := range snap.Nodes {
		s.nodeIndex[n.ID] = n
	}
	s.edges = snap.Edges
	s.achievements = snap.Achievements
	if s.achievements.CrownColor == "" {
		s.achievements.CrownColor = domain.CrownGold
	}
	s.goalCounter = snap.GoalCounter
	s.lastSavedAt = snap.LastSavedAt
	s.events.Import(snap.EventLog)
	s.InitializeVisibilityOnResume()
	return s
}
