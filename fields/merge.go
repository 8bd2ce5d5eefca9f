package fields

import (
	"sort"

	"github.com/tsawler/mosaic/model"
)

// Config holds configuration for cross-segment field merging.
type Config struct {
	// IoUThreshold is the overlap at or above which two detections are
	// considered the same physical field. Default: 0.5
	IoUThreshold float64

	// ConfidenceTieEpsilon is the confidence difference under which two
	// detections are considered equally confident, letting the secondary
	// tie-breakers decide. Default: 0.01
	ConfidenceTieEpsilon float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		IoUThreshold:         0.5,
		ConfidenceTieEpsilon: 0.01,
	}
}

// MergeAcrossSegments deduplicates fields detected in independently
// processed segments. Fields are bucketed by page (fields never merge
// across pages), clustered greedily by IoU within each page, and each
// cluster is reduced to a single representative whose sub-segment
// decomposition is the union of the cluster's.
//
// Empty input yields an empty, non-nil slice.
func MergeAcrossSegments(fieldSets [][]model.DetectedField, config Config) []model.DetectedField {
	var all []model.DetectedField
	for _, set := range fieldSets {
		all = append(all, set...)
	}

	merged := make([]model.DetectedField, 0, len(all))
	if len(all) == 0 {
		return merged
	}

	byPage := make(map[int][]model.DetectedField)
	var pageIndexes []int
	for _, f := range all {
		if _, seen := byPage[f.PageIndex]; !seen {
			pageIndexes = append(pageIndexes, f.PageIndex)
		}
		byPage[f.PageIndex] = append(byPage[f.PageIndex], f)
	}
	sort.Ints(pageIndexes)

	for _, page := range pageIndexes {
		merged = append(merged, mergePage(byPage[page], config)...)
	}

	return merged
}

// mergePage clusters one page's detections: each unassigned field is
// grouped with every later unassigned field overlapping it at or above the
// IoU threshold, and the whole group is consumed at once.
func mergePage(detections []model.DetectedField, config Config) []model.DetectedField {
	assigned := make([]bool, len(detections))
	out := make([]model.DetectedField, 0, len(detections))

	for i := range detections {
		if assigned[i] {
			continue
		}
		group := []model.DetectedField{detections[i]}
		assigned[i] = true

		for j := i + 1; j < len(detections); j++ {
			if assigned[j] {
				continue
			}
			if detections[i].BBox.IoU(detections[j].BBox) >= config.IoUThreshold {
				group = append(group, detections[j])
				assigned[j] = true
			}
		}

		best := selectBest(group, config)
		if len(group) > 1 {
			best.Segments = mergeSegments(group)
		}
		out = append(out, best)
	}

	return out
}

// selectBest picks the cluster representative: highest confidence wins;
// within the tie epsilon a decomposed field (one carrying Segments) beats
// an undecomposed one; remaining ties go to the longer label.
func selectBest(group []model.DetectedField, config Config) model.DetectedField {
	best := group[0]
	for _, f := range group[1:] {
		if f.Confidence > best.Confidence+config.ConfidenceTieEpsilon {
			best = f
			continue
		}
		if best.Confidence > f.Confidence+config.ConfidenceTieEpsilon {
			continue
		}
		// Tied on confidence.
		if len(f.Segments) > 0 && len(best.Segments) == 0 {
			best = f
			continue
		}
		if len(best.Segments) > 0 && len(f.Segments) == 0 {
			continue
		}
		if len(f.Label) > len(best.Label) {
			best = f
		}
	}
	return best
}

// mergeSegments unions the sub-segment decompositions of a cluster,
// bucketing by name. When the same name appears in multiple detections the
// larger box wins, on the assumption that it captured the sub-field more
// completely. First-seen order of names is preserved.
func mergeSegments(group []model.DetectedField) []model.FieldSegment {
	byName := make(map[string]model.FieldSegment)
	var names []string

	for _, f := range group {
		for _, seg := range f.Segments {
			existing, seen := byName[seg.Name]
			if !seen {
				names = append(names, seg.Name)
				byName[seg.Name] = seg
				continue
			}
			if seg.BBox.Area() > existing.BBox.Area() {
				byName[seg.Name] = seg
			}
		}
	}

	if len(names) == 0 {
		return nil
	}

	out := make([]model.FieldSegment, 0, len(names))
	for _, name := range names {
		out = append(out, byName[name])
	}
	return out
}
