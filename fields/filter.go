package fields

import (
	"math"

	"github.com/tsawler/mosaic/model"
)

// Filter validates externally sourced detections before they enter the
// merge pipeline. A field survives only if its bbox passes the strict
// normalized-geometry predicate, its confidence lies in [0,1] and at or
// above minConfidence, and every declared sub-segment has valid geometry
// (invalid sub-segments are removed without dropping the field).
//
// Invalid entities are silently excluded: they never appear in output and
// never raise an error.
func Filter(detections []model.DetectedField, minConfidence float64) []model.DetectedField {
	out := make([]model.DetectedField, 0, len(detections))

	for _, f := range detections {
		if !f.BBox.IsValid() || f.BBox.IsEmpty() {
			continue
		}
		// NaN slips past range comparisons, so reject it explicitly.
		if math.IsNaN(f.Confidence) {
			continue
		}
		if f.Confidence < 0 || f.Confidence > 1 || f.Confidence < minConfidence {
			continue
		}

		if len(f.Segments) > 0 {
			kept := make([]model.FieldSegment, 0, len(f.Segments))
			for _, seg := range f.Segments {
				if seg.BBox.IsValid() && !seg.BBox.IsEmpty() {
					kept = append(kept, seg)
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
