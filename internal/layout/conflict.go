// Package layout keeps node bounding boxes visually distinguishable: it
// nudges near-duplicate sizes among related nodes, rejects resizes that
// would overlap unrelated nodes, and finds empty canvas positions for new
// nodes. Randomness comes from an injected source so callers can make
// outcomes deterministic.
package layout

import (
	"math"
	"math/rand"

	"github.com/mindmirror/mindmirror/internal/domain"
)

const (
	// SimilarityThresholdPx: related boxes whose width and height each
	// differ by less than this are considered conflicting.
	SimilarityThresholdPx = 10
	// MinDimensionPx floors nudged box dimensions.
	MinDimensionPx = 50
	// MaxOverlapRatio is the tolerated overlap-area ratio against
	// unrelated nodes before a resize is rejected.
	MaxOverlapRatio = 0.15

	spiralStepPx   = 50
	spiralMaxRadii = 20
)

type Resolver struct {
	rng *rand.Rand
}

func NewResolver(rng *rand.Rand) *Resolver {
	return &Resolver{rng: rng}
}

// SimilarSize reports whether two boxes are close enough on both axes to be
// visually confusable.
func SimilarSize(a, b domain.Size) bool {
	return math.Abs(a.Width-b.Width) < SimilarityThresholdPx &&
		math.Abs(a.Height-b.Height) < SimilarityThresholdPx
}

// SimilarityOffset draws a signed offset in [-40,-20] ∪ [20,40]. The same
// offset is applied to both axes of a conflicting node.
func (r *Resolver) SimilarityOffset() float64 {
	mag := 20 + r.rng.Float64()*20
	if r.rng.Intn(2) == 0 {
		return -mag
	}
	return mag
}

// Nudge applies the offset to both dimensions, flooring at MinDimensionPx.
func Nudge(s domain.Size, offset float64) domain.Size {
	return domain.Size{
		Width:  math.Max(MinDimensionPx, s.Width+offset),
		Height: math.Max(MinDimensionPx, s.Height+offset),
	}
}

// OverlapRatio computes the bounding-box overlap area divided by the
// smaller of the two box areas. Zero when the boxes are disjoint or either
// is degenerate.
func OverlapRatio(aPos domain.Position, aSize domain.Size, bPos domain.Position, bSize domain.Size) float64 {
	w := math.Min(aPos.X+aSize.Width, bPos.X+bSize.Width) - math.Max(aPos.X, bPos.X)
	h := math.Min(aPos.Y+aSize.Height, bPos.Y+bSize.Height) - math.Max(aPos.Y, bPos.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	minArea := math.Min(aSize.Width*aSize.Height, bSize.Width*bSize.Height)
	if minArea <= 0 {
		return 0
	}
	return w * h / minArea
}

// Placed is an occupied box on the canvas.
type Placed struct {
	Position domain.Position
	Size     domain.Size
}

// Fits reports whether a box at pos overlaps none of the occupied boxes
// beyond the tolerance.
func Fits(pos domain.Position, size domain.Size, occupied []Placed) bool {
	for _, o := range occupied {
		if OverlapRatio(pos, size, o.Position, o.Size) > MaxOverlapRatio {
			return false
		}
	}
	return true
}

// spiral directions: the 8 compass points.
var directions = [8][2]float64{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// FindEmptyPosition searches for a non-overlapping slot, starting at center
// and spiralling outward in 8 directions at increasing radii. After
// spiralMaxRadii rings it falls back to a random position near the center.
func (r *Resolver) FindEmptyPosition(center domain.Position, size domain.Size, occupied []Placed) domain.Position {
	if Fits(center, size, occupied) {
		return center
	}
	for radius := 1; radius <= spiralMaxRadii; radius++ {
		dist := float64(radius * spiralStepPx)
		for _, d := range directions {
			candidate := domain.Position{
				X: center.X + d[0]*dist,
				Y: center.Y + d[1]*dist,
			}
			if Fits(candidate, size, occupied) {
				return candidate
			}
		}
	}
	return domain.Position{
		X: center.X + (r.rng.Float64()-0.5)*2*spiralStepPx*spiralMaxRadii,
		Y: center.Y + (r.rng.Float64()-0.5)*2*spiralStepPx*spiralMaxRadii,
	}
}
