package model

import "math"

// ValidEps is the tolerance applied when checking that a normalized box
// stays inside the unit square. Floating point error in upstream OCR
// engines routinely produces coordinates like 1.0000001.
const ValidEps = 0.01

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// NormBBox represents a bounding box in normalized page coordinates.
// All fields are fractions of the page dimensions in [0,1], with the
// origin at the top-left corner. This is the canonical, DPI-independent
// representation used throughout the library.
type NormBBox struct {
	X float64 `json:"x"` // Left, fraction of page width
	Y float64 `json:"y"` // Top, fraction of page height
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// NewNormBBox creates a normalized bounding box from coordinates
func NewNormBBox(x, y, w, h float64) NormBBox {
	return NormBBox{X: x, Y: y, W: w, H: h}
}

// Left returns the left edge X coordinate
func (b NormBBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate
func (b NormBBox) Right() float64 {
	return b.X + b.W
}

// Top returns the top edge Y coordinate
func (b NormBBox) Top() float64 {
	return b.Y
}

// Bottom returns the bottom edge Y coordinate
func (b NormBBox) Bottom() float64 {
	return b.Y + b.H
}

// Center returns the center point
func (b NormBBox) Center() Point {
	return Point{
		X: b.X + b.W/2,
		Y: b.Y + b.H/2,
	}
}

// Area returns the area of the bounding box
func (b NormBBox) Area() float64 {
	return b.W * b.H
}

// IsEmpty returns true if the bounding box has no positive area
func (b NormBBox) IsEmpty() bool {
	return b.W <= 0 || b.H <= 0
}

// Overlaps checks whether two boxes share interior area. Boxes that merely
// touch along an edge or at a corner do not overlap.
func (b NormBBox) Overlaps(other NormBBox) bool {
	return b.Left() < other.Right() && other.Left() < b.Right() &&
		b.Top() < other.Bottom() && other.Top() < b.Bottom()
}

// Intersection returns the intersection of two bounding boxes, or a zero
// box if they do not overlap.
func (b NormBBox) Intersection(other NormBBox) NormBBox {
	if !b.Overlaps(other) {
		return NormBBox{}
	}

	x := math.Max(b.Left(), other.Left())
	y := math.Max(b.Top(), other.Top())
	right := math.Min(b.Right(), other.Right())
	bottom := math.Min(b.Bottom(), other.Bottom())

	return NormBBox{
		X: x,
		Y: y,
		W: right - x,
		H: bottom - y,
	}
}

// Union returns the minimal box covering both bounding boxes
func (b NormBBox) Union(other NormBBox) NormBBox {
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Top(), other.Top())
	right := math.Max(b.Right(), other.Right())
	bottom := math.Max(b.Bottom(), other.Bottom())

	return NormBBox{
		X: x,
		Y: y,
		W: right - x,
		H: bottom - y,
	}
}

// IoU calculates the Intersection over Union of two boxes. The result is
// symmetric and always in [0,1]: 1.0 for identical boxes, 0 for disjoint
// boxes, and 0 whenever either box is degenerate (zero area).
func (b NormBBox) IoU(other NormBBox) float64 {
	if b.IsEmpty() || other.IsEmpty() {
		return 0
	}
	if !b.Overlaps(other) {
		return 0
	}

	inter := b.Intersection(other).Area()
	union := b.Area() + other.Area() - inter
	if union <= 0 {
		return 0
	}

	// Rounding can push the ratio a hair past 1 for identical boxes.
	return math.Min(1, inter/union)
}

// CenterDistance calculates the Euclidean distance between the centers of
// two boxes. This is a proximity heuristic for label/field adjacency and
// is deliberately distinct from IoU, which measures overlap.
func (b NormBBox) CenterDistance(other NormBBox) float64 {
	return b.Center().Distance(other.Center())
}

// Expand grows the box symmetrically by margin on all sides, clamped so the
// result never leaves the unit square.
func (b NormBBox) Expand(margin float64) NormBBox {
	x := math.Max(0, b.X-margin)
	y := math.Max(0, b.Y-margin)
	right := math.Min(1, b.Right()+margin)
	bottom := math.Min(1, b.Bottom()+margin)

	return NormBBox{
		X: x,
		Y: y,
		W: right - x,
		H: bottom - y,
	}
}

// Clamp forces the box into the unit square: X and Y are clamped into
// [0,1], then W and H are reduced so the box fits. Negative dimensions
// collapse to zero. This defends against malformed model output.
func (b NormBBox) Clamp() NormBBox {
	x := clamp01(b.X)
	y := clamp01(b.Y)
	w := math.Max(0, math.Min(b.W, 1-x))
	h := math.Max(0, math.Min(b.H, 1-y))

	return NormBBox{X: x, Y: y, W: w, H: h}
}

// IsValid reports whether the box is well-formed normalized geometry:
// finite values, non-negative origin and dimensions, and contained in the
// unit square within ValidEps tolerance. Anything failing this predicate
// must not enter the merge pipeline.
func (b NormBBox) IsValid() bool {
	for _, v := range [4]float64{b.X, b.Y, b.W, b.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	if b.X < 0 || b.Y < 0 || b.W < 0 || b.H < 0 {
		return false
	}
	if b.X+b.W > 1+ValidEps || b.Y+b.H > 1+ValidEps {
		return false
	}
	return true
}

// MergeBBoxes returns the minimal axis-aligned box covering all inputs.
// The second return value is false when the input is empty.
func MergeBBoxes(boxes []NormBBox) (NormBBox, bool) {
	if len(boxes) == 0 {
		return NormBBox{}, false
	}

	merged := boxes[0]
	for _, b := range boxes[1:] {
		merged = merged.Union(b)
	}

	return merged, true
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
