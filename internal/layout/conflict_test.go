package layout

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mindmirror/mindmirror/internal/domain"
)

func TestSimilarSize_BothAxesMustBeClose(t *testing.T) {
	base := domain.Size{Width: 200, Height: 150}

	assert.True(t, SimilarSize(base, domain.Size{Width: 205, Height: 145}))
	assert.False(t, SimilarSize(base, domain.Size{Width: 215, Height: 150}), "width differs enough")
	assert.False(t, SimilarSize(base, domain.Size{Width: 200, Height: 165}), "height differs enough")
	assert.False(t, SimilarSize(base, domain.Size{Width: 210, Height: 150}), "threshold is exclusive")
}

func TestSimilarityOffset_RangeAndBothSigns(t *testing.T) {
	r := NewResolver(rand.New(rand.NewSource(7)))

	sawPositive, sawNegative := false, false
	for i := 0; i < 200; i++ {
		off := r.SimilarityOffset()
		mag := math.Abs(off)
		assert.GreaterOrEqual(t, mag, 20.0)
		assert.LessOrEqual(t, mag, 40.0)
		if off > 0 {
			sawPositive = true
		} else {
			sawNegative = true
		}
	}
	assert.True(t, sawPositive)
	assert.True(t, sawNegative)
}

func TestNudge_FloorsAtMinimumDimension(t *testing.T) {
	got := Nudge(domain.Size{Width: 60, Height: 55}, -40)
	assert.EqualValues(t, MinDimensionPx, got.Width)
	assert.EqualValues(t, MinDimensionPx, got.Height)

	grown := Nudge(domain.Size{Width: 200, Height: 150}, 25)
	assert.EqualValues(t, 225, grown.Width)
	assert.EqualValues(t, 175, grown.Height)
}

func TestOverlapRatio(t *testing.T) {
	a := domain.Size{Width: 100, Height: 100}

	assert.Zero(t, OverlapRatio(domain.Position{X: 0, Y: 0}, a, domain.Position{X: 200, Y: 0}, a), "disjoint")
	assert.Zero(t, OverlapRatio(domain.Position{X: 0, Y: 0}, a, domain.Position{X: 100, Y: 0}, a), "touching edges")
	assert.InDelta(t, 1.0, OverlapRatio(domain.Position{X: 0, Y: 0}, a, domain.Position{X: 0, Y: 0}, a), 1e-9, "identical")

	// 50x100 overlap against the smaller 100x100 area.
	small := domain.Size{Width: 100, Height: 100}
	big := domain.Size{Width: 400, Height: 400}
	got := OverlapRatio(domain.Position{X: 0, Y: 0}, big, domain.Position{X: 350, Y: 0}, small)
	assert.InDelta(t, 0.5, got, 1e-9, "ratio is against the smaller box")
}

func TestFindEmptyPosition_PrefersCenterThenSpiral(t *testing.T) {
	r := NewResolver(rand.New(rand.NewSource(1)))
	size := domain.Size{Width: 100, Height: 100}
	center := domain.Position{X: 0, Y: 0}

	// Empty canvas: the center itself wins.
	assert.Equal(t, center, r.FindEmptyPosition(center, size, nil))

	// Center occupied: the result clears the occupant and stays on the
	// spiral grid.
	occupied := []Placed{{Position: center, Size: size}}
	got := r.FindEmptyPosition(center, size, occupied)
	assert.True(t, Fits(got, size, occupied))
	assert.NotEqual(t, center, got)
	assert.Zero(t, math.Mod(got.X, spiralStepPx))
	assert.Zero(t, math.Mod(got.Y, spiralStepPx))
}

func TestFindEmptyPosition_FallsBackWhenCrowded(t *testing.T) {
	r := NewResolver(rand.New(rand.NewSource(3)))
	size := domain.Size{Width: 100, Height: 100}
	center := domain.Position{X: 0, Y: 0}

	// Occupy every spiral candidate with a giant box.
	occupied := []Placed{{
		Position: domain.Position{X: -3000, Y: -3000},
		Size:     domain.Size{Width: 6000, Height: 6000},
	}}
	got := r.FindEmptyPosition(center, size, occupied)

	maxDist := float64(2 * spiralStepPx * spiralMaxRadii)
	assert.LessOrEqual(t, math.Abs(got.X), maxDist)
	assert.LessOrEqual(t, math.Abs(got.Y), maxDist)
}
