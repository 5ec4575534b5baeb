package engine

// SetCollapsed marks a node collapsed or expanded.
func (s *State) SetCollapsed(id string, collapsed bool) {
	if s.nodeIndex[id] == nil {
		return
	}
	if collapsed {
		s.collapsed[id] = true
	} else {
		delete(s.collapsed, id)
	}
}

// IsCollapsed reports the node's own collapse mark.
func (s *State) IsCollapsed(id string) bool {
	return s.collapsed[id]
}

// IsHidden reports whether some strict ancestor of the node is collapsed.
func (s *State) IsHidden(id string) bool {
	current := id
	for steps := 0; steps < maxAncestorWalk; steps++ {
		parentID := s.Parent(current)
		if parentID == "" {
			return false
		}
		if s.collapsed[parentID] {
			return true
		}
		current = parentID
	}
	return false
}

// InitializeVisibilityOnResume derives the collapse map after a load:
// every node with children starts collapsed, then the path above the
// most-recently-worked-on task is force-expanded so the user's current
// focus is visible.
func (s *State) InitializeVisibilityOnResume() {
	s.collapsed = map[string]bool{}
	for id, r := range s.rels {
		if len(r.Children) > 0 {
			s.collapsed[id] = true
		}
	}

	var lastID string
	var lastWorked int64
	for id, t := range s.tasks {
		if t.LastWorkedOn > lastWorked {
			lastWorked = t.LastWorkedOn
			lastID = id
		}
	}
	if lastID == "" {
		return
	}
	current := lastID
	for steps := 0; steps < maxAncestorWalk; steps++ {
		parentID := s.Parent(current)
		if parentID == "" {
			return
		}
		delete(s.collapsed, parentID)
		current = parentID
	}
}
