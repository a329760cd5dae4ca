package spatial

import (
	"math"

	"github.com/surveyorai/scenegraph/internal/core/model"
)

// IoU computes intersection-over-union for two axis-aligned boxes.
// Returns 0 for disjoint boxes and for degenerate zero-area unions.
func IoU(a, b model.BoundingBox) float64 {
	ix := math.Max(a.X, b.X)
	iy := math.Max(a.Y, b.Y)
	ix2 := math.Min(a.X+a.Width, b.X+b.Width)
	iy2 := math.Min(a.Y+a.Height, b.Y+b.Height)

	iw := ix2 - ix
	ih := iy2 - iy
	if iw <= 0 || ih <= 0 {
		return 0
	}

	intersection := iw * ih
	union := a.Width*a.Height + b.Width*b.Height - intersection
	if union <= 0 {
		return 0
	}
	return intersection / union
}

// contains reports whether outer fully contains inner.
func contains(outer, inner model.BoundingBox) bool {
	return outer.X <= inner.X &&
		outer.Y <= inner.Y &&
		outer.X+outer.Width >= inner.X+inner.Width &&
		outer.Y+outer.Height >= inner.Y+inner.Height
}

func center(b model.BoundingBox) (float64, float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

func diagonal(b model.BoundingBox) float64 {
	return math.Hypot(b.Width, b.Height)
}

func centerDistance(a, b model.BoundingBox) float64 {
	ax, ay := center(a)
	bx, by := center(b)
	return math.Hypot(bx-ax, by-ay)
}

// adjacent reports whether the boxes are within gap pixels of touching
// along one axis while overlapping on the other axis.
func adjacent(a, b model.BoundingBox, gap float64) bool {
	gapX := math.Max(a.X, b.X) - math.Min(a.X+a.Width, b.X+b.Width)
	gapY := math.Max(a.Y, b.Y) - math.Min(a.Y+a.Height, b.Y+b.Height)

	overlapX := gapX < 0
	overlapY := gapY < 0

	if gapX >= 0 && gapX <= gap && overlapY {
		return true
	}
	if gapY >= 0 && gapY <= gap && overlapX {
		return true
	}
	return false
}
