// Package mosaic provides a fluent API for the geometry side of a tiled
// OCR pipeline: planning overlapping tiles over large page rasters,
// merging per-tile recognition results back into whole pages, and
// consolidating detected form fields across overlapping segments.
//
// Basic usage:
//
//	tiles, err := mosaic.New().PlanTiles(0, 4800, 3600)
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	merged := mosaic.New().
//	    TileSize(1500).
//	    Overlap(0.15).
//	    IoUThreshold(0.6).
//	    MergeResults(results)
//
// For finer control the lower-level tiling, merge, and fields packages
// are also available.
package mosaic

import (
	"github.com/tsawler/mosaic/fields"
	"github.com/tsawler/mosaic/merge"
	"github.com/tsawler/mosaic/model"
	"github.com/tsawler/mosaic/tiling"
)

// Pipeline carries the configuration shared by tile planning, result
// merging, and field consolidation. The zero value is not usable; start
// from New.
type Pipeline struct {
	tiling tiling.Config
	merge  merge.Config
	fields fields.Config
}

// New returns a Pipeline with the default configuration for every stage.
func New() *Pipeline {
	return &Pipeline{
		tiling: tiling.DefaultConfig(),
		merge:  merge.DefaultConfig(),
		fields: fields.DefaultConfig(),
	}
}

// TileSize sets the target tile edge in pixels and returns a new
// Pipeline; the receiver is unchanged.
func (p *Pipeline) TileSize(px int) *Pipeline {
	next := *p
	next.tiling.TargetTileSize = px
	return &next
}

// Overlap sets the tile overlap ratio and returns a new Pipeline; the
// receiver is unchanged.
func (p *Pipeline) Overlap(ratio float64) *Pipeline {
	next := *p
	next.tiling.OverlapRatio = ratio
	return &next
}

// IoUThreshold sets the overlap threshold used by both block
// deduplication and field merging, and returns a new Pipeline; the
// receiver is unchanged.
func (p *Pipeline) IoUThreshold(threshold float64) *Pipeline {
	next := *p
	next.merge.IoUThreshold = threshold
	next.fields.IoUThreshold = threshold
	return &next
}

// PlanTiles computes the tile grid for one page.
func (p *Pipeline) PlanTiles(pageIndex, widthPx, heightPx int) ([]model.Tile, error) {
	return tiling.NewGeneratorWithConfig(p.tiling).Generate(pageIndex, widthPx, heightPx)
}

// MergeTilePages combines the recognition results of one page's tiles
// into a single page, deduplicating blocks detected in overlap zones.
func (p *Pipeline) MergeTilePages(pages []model.Page) *model.Page {
	return merge.MergeTilePages(pages, p.merge)
}

// MergeResults combines per-tile recognition results into one document
// result.
func (p *Pipeline) MergeResults(results []model.Result) *model.Result {
	return merge.MergeResults(results, p.merge)
}

// MergeFields consolidates field detections from overlapping segments
// into one list per document.
func (p *Pipeline) MergeFields(fieldSets [][]model.DetectedField) []model.DetectedField {
	return fields.MergeAcrossSegments(fieldSets, p.fields)
}

// ClampFields restricts detections to a segment's bounds, dropping the
// ones that fall entirely outside it.
func (p *Pipeline) ClampFields(detections []model.DetectedField, seg model.Segment) []model.DetectedField {
	return fields.ApplyBoundary(detections, seg)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	tiles := mosaic.Must(mosaic.New().PlanTiles(0, 4800, 3600))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
