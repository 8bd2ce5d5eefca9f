// Package fields reconciles form fields detected across independently
// processed segments of the same document.
//
// Overlapping segments cause the same physical field to be detected more
// than once. [MergeAcrossSegments] clusters detections per page by IoU and
// keeps one representative per cluster, unioning the sub-field
// decompositions of the duplicates so information detected in different
// segments (say, the year box from one segment and the day box from
// another) survives the merge.
//
// When a segment was given to the detection collaborator as a hard
// boundary, [ApplyBoundary] defensively clips every returned field to the
// segment and drops anything that is not genuinely inside, so out-of-bounds
// coordinates from a misbehaving collaborator never reach the caller.
//
// [GroupByProximity] is a separate utility clustering by centroid distance
// rather than IoU. It serves label/field adjacency queries and is not part
// of the merge path.
package fields
