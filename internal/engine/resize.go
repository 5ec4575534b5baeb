package engine

import (
	"github.com/mindmirror/mindmirror/internal/domain"
	"github.com/mindmirror/mindmirror/internal/layout"
)

// ResizeNode resizes a node's bounding box, which doubles as editing its
// target time. The resize is rejected outright when the new box would
// overlap an unrelated node beyond tolerance; on success, any parent,
// sibling or child whose size would become visually confusable is nudged
// apart by the resolver.
func (s *State) ResizeNode(id string, size domain.Size, resolver *layout.Resolver) bool {
	node := s.nodeIndex[id]
	if node == nil {
		return false
	}

	related := s.relatedNodes(id)
	relatedSet := map[string]bool{}
	for _, rid := range related {
		relatedSet[rid] = true
	}
	for _, other := range s.nodes {
		if other.ID == id || relatedSet[other.ID] {
			continue
		}
		if layout.OverlapRatio(node.Position, size, other.Position, other.Size) > layout.MaxOverlapRatio {
			s.logger.Warn("resize rejected: would overlap unrelated node",
				"node", id, "other", other.ID)
			return false
		}
	}

	node.Size = size
	for _, relatedID := range related {
		other := s.nodeIndex[relatedID]
		if other == nil || !layout.SimilarSize(other.Size, size) {
			continue
		}
		other.Size = layout.Nudge(other.Size, resolver.SimilarityOffset())
	}
	return true
}

// relatedNodes collects the parent, siblings and children of a node, in
// that order: the cluster the similarity-avoidance policy applies to.
func (s *State) relatedNodes(id string) []string {
	var related []string
	if parentID := s.Parent(id); parentID != "" {
		related = append(related, parentID)
		for _, siblingID := range s.Children(parentID) {
			if siblingID != id {
				related = append(related, siblingID)
			}
		}
	}
	related = append(related, s.Children(id)...)
	return related
}

// PlaceNode positions a node in an empty canvas slot near the given
// center, avoiding every other node's box. Used to materialize children
// created by a stop-with-creation.
func (s *State) PlaceNode(id string, center domain.Position, resolver *layout.Resolver) {
	node := s.nodeIndex[id]
	if node == nil {
		return
	}
	occupied := make([]layout.Placed, 0, len(s.nodes))
	for _, other := range s.nodes {
		if other.ID == id {
			continue
		}
		occupied = append(occupied, layout.Placed{Position: other.Position, Size: other.Size})
	}
	node.Position = resolver.FindEmptyPosition(center, node.Size, occupied)
}
