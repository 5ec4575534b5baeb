package engine

import (
	"fmt"

	"github.com/mindmirror/mindmirror/internal/domain"
)

// maxAncestorWalk bounds parent-pointer walks against pathological depth or
// a corrupted relationship map.
const maxAncestorWalk = 10000

// AddTask creates a node and its paired task together. An empty name draws
// a default from the goal counter; duplicate names get "(n)" suffixes.
// Returns the new node's ID.
func (s *State) AddTask(name string, pos domain.Position, size domain.Size) string {
	now := s.nowMillis()
	s.goalCounter++
	if name == "" {
		name = fmt.Sprintf("Goal %d", s.goalCounter)
	}
	name = s.dedupeName(name, "")

	id := s.newID()
	node := &domain.Node{ID: id, Position: pos, Size: size}
	s.nodes = append(s.nodes, node)
	s.nodeIndex[id] = node
	s.tasks[id] = &domain.Task{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		Intervals: []domain.Interval{},
	}
	s.lastCreatedAt = now
	s.events.Append(domain.EventNodeCreate, map[string]any{
		"nodeId": id,
		"name":   name,
	}, now)
	return id
}

// RenameTask renames a task, applying the same "(n)" dedupe as AddTask but
// ignoring the task's own current name. Returns the final name.
func (s *State) RenameTask(id, name string) string {
	task := s.tasks[id]
	if task == nil {
		return ""
	}
	name = s.dedupeName(name, id)
	task.Name = name
	return name
}

// dedupeName suffixes "(n)" starting at 2 until the name is unique across
// all tasks, excluding excludeID.
func (s *State) dedupeName(name, excludeID string) string {
	taken := func(candidate string) bool {
		for id, t := range s.tasks {
			if id != excludeID && t.Name == candidate {
				return true
			}
		}
		return false
	}
	candidate := name
	for counter := 2; taken(candidate); counter++ {
		candidate = fmt.Sprintf("%s (%d)", name, counter)
	}
	return candidate
}

// Link makes parentID the parent of childID. Structural violations (child
// already parented, cycle, fan-out, depth policy) are rejected silently:
// logged, state unchanged, false returned.
func (s *State) Link(parentID, childID string) bool {
	if s.nodeIndex[parentID] == nil || s.nodeIndex[childID] == nil {
		s.logger.Warn("link rejected: unknown node", "parent", parentID, "child", childID)
		return false
	}
	if parentID == childID {
		s.logger.Warn("link rejected: self link", "node", parentID)
		return false
	}
	if s.rels[childID].HasParent() {
		s.logger.Warn("link rejected: child already has a parent", "parent", parentID, "child", childID)
		return false
	}
	if s.wouldCycle(parentID, childID) {
		s.logger.Warn("link rejected: would create a cycle", "parent", parentID, "child", childID)
		return false
	}
	if len(s.rel(parentID).Children) >= s.cfg.MaxChildren {
		s.logger.Warn("link rejected: parent at fan-out limit",
			"parent", parentID, "child", childID, "limit", s.cfg.MaxChildren)
		return false
	}
	if s.cfg.MaxLinkDepth > 0 && s.Level(parentID)+1 > s.cfg.MaxLinkDepth {
		s.logger.Warn("link rejected: depth policy",
			"parent", parentID, "child", childID, "maxDepth", s.cfg.MaxLinkDepth)
		return false
	}

	// Detach any stale membership before relinking.
	childRel := s.rel(childID)
	if childRel.Parent != nil {
		s.removeChild(*childRel.Parent, childID)
	}

	childRel.Parent = &parentID
	parentRel := s.rel(parentID)
	if !contains(parentRel.Children, childID) {
		parentRel.Children = append(parentRel.Children, childID)
	}

	edge := &domain.Edge{ID: domain.EdgeID(parentID, childID), Source: parentID, Target: childID}
	s.edges = append(removeEdge(s.edges, edge.ID), edge)

	s.events.Append(domain.EventNodeLink, map[string]any{
		"parentId": parentID,
		"childId":  childID,
	}, s.nowMillis())
	return true
}

// Unlink removes the parent link between the pair. The nodes themselves
// survive.
func (s *State) Unlink(parentID, childID string) {
	if r := s.rels[childID]; r != nil && r.Parent != nil && *r.Parent == parentID {
		r.Parent = nil
	}
	s.removeChild(parentID, childID)
	s.edges = removeEdge(s.edges, domain.EdgeID(parentID, childID))
	s.RollupNode(parentID)
	s.RollupAncestors(parentID)
}

// Delete removes a node and its task. Children are orphaned, never
// cascade-deleted. When mergeTargetID is non-empty, the deleted node's
// time and intervals fold into the target first, with each merged note
// prefixed by the source name.
func (s *State) Delete(id, mergeTargetID string) bool {
	task := s.tasks[id]
	if task == nil || s.nodeIndex[id] == nil {
		s.logger.Warn("delete rejected: unknown node", "node", id)
		return false
	}

	if mergeTargetID != "" {
		target := s.tasks[mergeTargetID]
		if target == nil {
			s.logger.Warn("delete rejected: unknown merge target", "node", id, "target", mergeTargetID)
			return false
		}
		s.mergeInto(target, task)
	}

	rel := s.rels[id]
	var formerParent string
	if rel != nil {
		if rel.Parent != nil {
			formerParent = *rel.Parent
			s.removeChild(formerParent, id)
			s.edges = removeEdge(s.edges, domain.EdgeID(formerParent, id))
		}
		for _, childID := range rel.Children {
			if cr := s.rels[childID]; cr != nil {
				cr.Parent = nil
			}
			s.edges = removeEdge(s.edges, domain.EdgeID(id, childID))
		}
	}

	delete(s.rels, id)
	delete(s.tasks, id)
	delete(s.collapsed, id)
	delete(s.nodeIndex, id)
	for i, n := range s.nodes {
		if n.ID == id {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			break
		}
	}

	if formerParent != "" {
		s.RollupNode(formerParent)
		s.RollupAncestors(formerParent)
	}
	if mergeTargetID != "" {
		s.RollupAncestors(mergeTargetID)
	}
	return true
}

// mergeInto folds src's time and history into dst.
func (s *State) mergeInto(dst, src *domain.Task) {
	dst.TimeSpent += src.TimeSpent
	prefix := fmt.Sprintf("(from %s) ", src.Name)
	for _, iv := range src.Intervals {
		merged := iv
		merged.Notes = make([]domain.Note, len(iv.Notes))
		for i, n := range iv.Notes {
			n.Content = prefix + n.Content
			merged.Notes[i] = n
		}
		dst.Intervals = append(dst.Intervals, merged)
	}
}

// MoveNode repositions a node and records the move.
func (s *State) MoveNode(id string, pos domain.Position) {
	node := s.nodeIndex[id]
	if node == nil {
		return
	}
	old := node.Position
	node.Position = pos
	s.events.Append(domain.EventNodeMove, map[string]any{
		"nodeId":      id,
		"oldPosition": map[string]any{"x": old.X, "y": old.Y},
		"newPosition": map[string]any{"x": pos.X, "y": pos.Y},
	}, s.nowMillis())
}

// wouldCycle reports whether making parentID the parent of childID would
// make childID its own ancestor: walk parent pointers up from the proposed
// parent; reaching the child means a cycle.
func (s *State) wouldCycle(parentID, childID string) bool {
	current := parentID
	for steps := 0; steps < maxAncestorWalk; steps++ {
		if current == childID {
			return true
		}
		r := s.rels[current]
		if r == nil || r.Parent == nil {
			return false
		}
		current = *r.Parent
	}
	s.logger.Warn("ancestor walk exceeded bound", "from", parentID)
	return true
}

// Level returns a node's 1-based depth: 1 for a root.
func (s *State) Level(id string) int {
	level := 1
	current := id
	for steps := 0; steps < maxAncestorWalk; steps++ {
		r := s.rels[current]
		if r == nil || r.Parent == nil {
			return level
		}
		current = *r.Parent
		level++
	}
	return level
}

// Parent returns a node's parent ID, or "".
func (s *State) Parent(id string) string {
	if r := s.rels[id]; r != nil && r.Parent != nil {
		return *r.Parent
	}
	return ""
}

// Children returns a node's direct children in link order.
func (s *State) Children(id string) []string {
	if r := s.rels[id]; r != nil {
		return r.Children
	}
	return nil
}

// Descendants returns all transitive descendants of a node.
func (s *State) Descendants(id string) []string {
	var out []string
	for _, childID := range s.Children(id) {
		out = append(out, childID)
		out = append(out, s.Descendants(childID)...)
	}
	return out
}

// IsDescendant reports whether id is a transitive descendant of ancestorID.
func (s *State) IsDescendant(id, ancestorID string) bool {
	current := id
	for steps := 0; steps < maxAncestorWalk; steps++ {
		r := s.rels[current]
		if r == nil || r.Parent == nil {
			return false
		}
		if *r.Parent == ancestorID {
			return true
		}
		current = *r.Parent
	}
	return false
}

// MainNodes returns every parentless node in creation order. Overall
// alignment is computed over this set; childless entries are independent
// nodes rather than "main" in the strict sense (see IsMainNode).
func (s *State) MainNodes() []*domain.Node {
	var out []*domain.Node
	for _, n := range s.nodes {
		if !s.rels[n.ID].HasParent() {
			out = append(out, n)
		}
	}
	return out
}

// IsMainNode reports whether a node is a root with at least one child.
func (s *State) IsMainNode(id string) bool {
	r := s.rels[id]
	return r != nil && !r.HasParent() && len(r.Children) > 0
}

// MainNodeOf walks up to the root above a node (the node itself if
// parentless).
func (s *State) MainNodeOf(id string) string {
	current := id
	for steps := 0; steps < maxAncestorWalk; steps++ {
		r := s.rels[current]
		if r == nil || r.Parent == nil {
			return current
		}
		current = *r.Parent
	}
	return current
}

func (s *State) removeChild(parentID, childID string) {
	r := s.rels[parentID]
	if r == nil {
		return
	}
	for i, c := range r.Children {
		if c == childID {
			r.Children = append(r.Children[:i], r.Children[i+1:]...)
			return
		}
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeEdge(edges []*domain.Edge, id string) []*domain.Edge {
	for i, e := range edges {
		if e.ID == id {
			return append(edges[:i], edges[i+1:]...)
		}
	}
	return edges
}
