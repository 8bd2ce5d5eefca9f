// Package model provides the canonical data types for tile/segment based
// document analysis.
//
// This package defines the shared representation that the tiling, merge,
// and field packages operate on. All recognition collaborators ultimately
// produce these types, making them the primary API for consuming results.
//
// # Coordinate Systems
//
// Three bounding box types keep coordinate systems apart:
//
//   - [NormBBox] - normalized [0,1] fractions of the page, top-left origin.
//     The canonical, DPI-independent representation used everywhere.
//   - [PixelBBox] - absolute pixels, present only at the raster boundary.
//   - [PointBBox] - PDF points (72/inch), present only when exporting
//     overlays back into a PDF page.
//
// Conversions between them ([ToNormalized], [FromNormalized],
// [PixelToPoint], [PointToPixel]) are pure functions that fail fast with
// [ErrBadDimensions] on malformed page dimensions rather than letting NaN
// or Inf propagate into clustering math.
//
// # Geometry
//
// [NormBBox] carries the geometric primitives the merge pipeline is built
// on: overlap testing, intersection, union, IoU, center distance, expand,
// clamp, and the [NormBBox.IsValid] predicate that gates externally
// sourced geometry.
//
// # Recognition Results
//
// A [Page] holds the recognized regions of one page: [Block] (with [Line]
// and [Token]), [Table], and [Figure]. A [Result] is the envelope returned
// by a recognition collaborator.
//
// # Partitions and Fields
//
// [Tile] and [Segment] describe the two kinds of page partition; both are
// geometrically a normalized box. [DetectedField] is a form-input region
// detected within a segment, optionally decomposed into [FieldSegment]
// sub-boxes.
package model
