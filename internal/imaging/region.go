package imaging

import (
	"fmt"
	"image"
)

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
//   - Width = X2 - X1, Height = Y2 - Y1
type Region struct {
	X1 int `json:"x1"` // Left edge X coordinate (inclusive)
	Y1 int `json:"y1"` // Top edge Y coordinate (inclusive)
	X2 int `json:"x2"` // Right edge X coordinate (exclusive)
	Y2 int `json:"y2"` // Bottom edge Y coordinate (exclusive)
}

// RegionFromPoints builds a normalized region spanning two corner points,
// regardless of which corner was given first.
func RegionFromPoints(a, b image.Point) Region {
	return Region{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}.Normalize()
}

// RegionFromRect converts an image.Rectangle to a Region.
func RegionFromRect(r image.Rectangle) Region {
	return Region{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// Normalize returns the region with X1 <= X2 and Y1 <= Y2.
func (r Region) Normalize() Region {
	if r.X1 > r.X2 {
		r.X1, r.X2 = r.X2, r.X1
	}
	if r.Y1 > r.Y2 {
		r.Y1, r.Y2 = r.Y2, r.Y1
	}
	return r
}

// Clamp limits every coordinate to [0,width] x [0,height].
//
// Unlike image.Rectangle.Intersect, a region that ends up with zero area is
// kept where it was clamped instead of collapsing to the zero rectangle.
// The region is normalized first.
func (r Region) Clamp(width, height int) Region {
	r = r.Normalize()
	r.X1 = clampInt(r.X1, 0, width)
	r.X2 = clampInt(r.X2, 0, width)
	r.Y1 = clampInt(r.Y1, 0, height)
	r.Y2 = clampInt(r.Y2, 0, height)
	return r
}

// Width returns X2 - X1.
func (r Region) Width() int { return r.X2 - r.X1 }

// Height returns Y2 - Y1.
func (r Region) Height() int { return r.Y2 - r.Y1 }

// Empty reports whether the region has zero or negative area.
func (r Region) Empty() bool { return r.X1 >= r.X2 || r.Y1 >= r.Y2 }

// Origin returns the top-left corner.
func (r Region) Origin() image.Point { return image.Pt(r.X1, r.Y1) }

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle { return image.Rect(r.X1, r.Y1, r.X2, r.Y2) }

// Offset translates the region by p.
func (r Region) Offset(p image.Point) Region {
	return Region{X1: r.X1 + p.X, Y1: r.Y1 + p.Y, X2: r.X2 + p.X, Y2: r.Y2 + p.Y}
}

// Overlaps reports whether the region shares at least one pixel with bounds.
func (r Region) Overlaps(bounds image.Rectangle) bool {
	return r.Normalize().Rect().Overlaps(bounds)
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X1, r.Y1, r.X2, r.Y2)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
