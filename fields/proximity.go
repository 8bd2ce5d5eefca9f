package fields

import "github.com/tsawler/mosaic/model"

// GroupByProximity clusters fields whose bbox centers lie within
// maxDistance of some other member, using single-linkage: a field joins a
// group if it is close to any field already in it. Fields on different
// pages never group together.
//
// This is a proximity heuristic for label/field adjacency. It is
// intentionally distinct from the IoU clustering used by
// MergeAcrossSegments: two adjacent fields can be near each other without
// overlapping at all.
func GroupByProximity(detections []model.DetectedField, maxDistance float64) [][]model.DetectedField {
	if len(detections) == 0 {
		return nil
	}

	assigned := make([]bool, len(detections))
	var groups [][]model.DetectedField

	for i := range detections {
		if assigned[i] {
			continue
		}
		group := []model.DetectedField{detections[i]}
		assigned[i] = true

		// Grow the group transitively: newly added members can pull in
		// fields beyond maxDistance of the seed.
		for cursor := 0; cursor < len(group); cursor++ {
			for j := range detections {
				if assigned[j] {
					continue
				}
				if detections[j].PageIndex != group[cursor].PageIndex {
					continue
				}
				if group[cursor].BBox.CenterDistance(detections[j].BBox) <= maxDistance {
					group = append(group, detections[j])
					assigned[j] = true
				}
			}
		}

		groups = append(groups, group)
	}

	return groups
}
