package fields

import (
	"math"

	"github.com/tsawler/mosaic/model"
)

// ClampToSegment clips a box to a segment's boundary by axis-aligned
// rectangle intersection. The second return value is false when the
// clamped box has no positive area, meaning the field lies outside the
// segment entirely.
func ClampToSegment(bbox model.NormBBox, seg model.Segment) (model.NormBBox, bool) {
	sb := seg.BBox()

	x := math.Max(bbox.Left(), sb.Left())
	y := math.Max(bbox.Top(), sb.Top())
	right := math.Min(bbox.Right(), sb.Right())
	bottom := math.Min(bbox.Bottom(), sb.Bottom())

	clamped := model.NormBBox{
		X: x,
		Y: y,
		W: math.Max(0, right-x),
		H: math.Max(0, bottom-y),
	}

	return clamped, !clamped.IsEmpty()
}

// InsideSegment re-checks that an already-clamped field genuinely lies
// inside the segment with positive area. The check runs on the clamped
// geometry, not the original, so a field the collaborator reported outside
// the requested region can never pass.
func InsideSegment(field model.DetectedField, seg model.Segment) bool {
	sb := seg.BBox()
	b := field.BBox

	if b.IsEmpty() {
		return false
	}

	const eps = 1e-9
	return b.Left() >= sb.Left()-eps && b.Right() <= sb.Right()+eps &&
		b.Top() >= sb.Top()-eps && b.Bottom() <= sb.Bottom()+eps
}

// ApplyBoundary enforces a hard segment boundary on externally detected
// fields: each field and its sub-segments are clamped to the segment, and
// fields failing containment after clamping are dropped entirely rather
// than passed through out of bounds. Sub-segments that collapse to zero
// area are removed from the surviving field.
func ApplyBoundary(detections []model.DetectedField, seg model.Segment) []model.DetectedField {
	out := make([]model.DetectedField, 0, len(detections))

	for _, f := range detections {
		clamped, ok := ClampToSegment(f.BBox, seg)
		if !ok {
			continue
		}
		f.BBox = clamped
		if !InsideSegment(f, seg) {
			continue
		}

		if len(f.Segments) > 0 {
			kept := make([]model.FieldSegment, 0, len(f.Segments))
			for _, sub := range f.Segments {
				if sb, ok := ClampToSegment(sub.BBox, seg); ok {
					sub.BBox = sb
					kept = append(kept, sub)
				}
			}
			if len(kept) == 0 {
				kept = nil
			}
			f.Segments = kept
		}

		out = append(out, f)
	}

	return out
}
