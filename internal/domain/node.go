package domain

// Position is a node's placement on the canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a node's bounding box in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TargetSeconds derives expected effort from the bounding box:
// area scaled down by 100.
func (s Size) TargetSeconds() float64 {
	return s.Width * s.Height / 100
}

// Node is a goal on the map. Identity is immutable after creation;
// size and position are mutable.
type Node struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
	Size     Size     `json:"size"`
}

// Edge is the structural record for a parent→child link. Its ID is
// "<parent>-<child>".
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// EdgeID builds the canonical edge ID for a parent/child pair.
func EdgeID(parentID, childID string) string {
	return parentID + "-" + childID
}

// Relationship tracks a node's single parent and its ordered children.
type Relationship struct {
	Parent   *string  `json:"parent"`
	Children []string `json:"children"`
}

// HasParent reports whether the relationship records a parent link.
func (r *Relationship) HasParent() bool {
	return r != nil && r.Parent != nil
}
