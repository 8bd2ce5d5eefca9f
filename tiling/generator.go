// Package tiling partitions a page into a grid of overlapping tiles so each
// tile can be sent independently to an OCR collaborator under memory and
// latency limits. Overlap between neighboring tiles recovers content that
// straddles a tile boundary; the merge package removes the resulting
// duplicates afterwards.
package tiling

import (
	"fmt"
	"math"

	"github.com/tsawler/mosaic/model"
)

// Config holds configuration for tile generation.
type Config struct {
	// TargetTileSize is the preferred tile edge length in pixels.
	// Default: 1200
	TargetTileSize int

	// OverlapRatio is the fraction of a tile dimension added as overlap on
	// each interior edge. Default: 0.1
	OverlapRatio float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		TargetTileSize: 1200,
		OverlapRatio:   0.1,
	}
}

// Generator computes tile grids over pages.
type Generator struct {
	config Config
}

// NewGenerator creates a tile generator with default configuration.
func NewGenerator() *Generator {
	return &Generator{config: DefaultConfig()}
}

// NewGeneratorWithConfig creates a tile generator with custom configuration.
func NewGeneratorWithConfig(config Config) *Generator {
	if config.TargetTileSize <= 0 {
		config.TargetTileSize = DefaultConfig().TargetTileSize
	}
	if config.OverlapRatio < 0 {
		config.OverlapRatio = 0
	}
	return &Generator{config: config}
}

// Generate computes the tile grid for one page of the given pixel size.
//
// The page is divided into ceil(W/target) x ceil(H/target) even cells, so
// there are no ragged edges. Each cell is then grown by tileDim x
// OverlapRatio pixels on its interior edges only (the outer page boundary
// gets no overlap), clipped to the page, and emitted as a normalized box.
// A page no larger than the target in both dimensions yields exactly one
// [0,0,1,1] tile.
func (g *Generator) Generate(pageIndex, widthPx, heightPx int) ([]model.Tile, error) {
	if widthPx <= 0 || heightPx <= 0 {
		return nil, fmt.Errorf("generating tiles: %w (got %dx%d)", model.ErrBadDimensions, widthPx, heightPx)
	}

	target := float64(g.config.TargetTileSize)
	w := float64(widthPx)
	h := float64(heightPx)

	cols := int(math.Ceil(w / target))
	rows := int(math.Ceil(h / target))

	tileW := w / float64(cols)
	tileH := h / float64(rows)
	overlapX := tileW * g.config.OverlapRatio
	overlapY := tileH * g.config.OverlapRatio

	tiles := make([]model.Tile, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x0 := float64(c) * tileW
			x1 := float64(c+1) * tileW
			y0 := float64(r) * tileH
			y1 := float64(r+1) * tileH

			// Overlap applies on interior edges only.
			if c > 0 {
				x0 -= overlapX
			}
			if c < cols-1 {
				x1 += overlapX
			}
			if r > 0 {
				y0 -= overlapY
			}
			if r < rows-1 {
				y1 += overlapY
			}

			x0 = math.Max(0, x0)
			y0 = math.Max(0, y0)
			x1 = math.Min(w, x1)
			y1 = math.Min(h, y1)

			tiles = append(tiles, model.Tile{
				PageIndex:    pageIndex,
				BBox:         model.NewNormBBox(x0/w, y0/h, (x1-x0)/w, (y1-y0)/h),
				OverlapRatio: g.config.OverlapRatio,
			})
		}
	}

	return tiles, nil
}

// OptimalTileSize derives a target tile edge length from the page area,
// aiming for roughly six tiles per page, clamped into [minSize, maxSize].
// It lets callers bound tile count for very large or very small pages
// instead of using the fixed default.
func OptimalTileSize(widthPx, heightPx, maxSize, minSize int) int {
	if widthPx <= 0 || heightPx <= 0 {
		return minSize
	}
	if minSize > maxSize {
		minSize, maxSize = maxSize, minSize
	}

	area := float64(widthPx) * float64(heightPx)
	size := int(math.Sqrt(area / 6))

	if size < minSize {
		return minSize
	}
	if size > maxSize {
		return maxSize
	}
	return size
}

// ValidateTiles checks the tile contract: every tile's box must be valid
// normalized geometry (within the unit square at 1% float tolerance) with
// positive area. It returns the first violation found.
func ValidateTiles(tiles []model.Tile) error {
	for i, tile := range tiles {
		if !tile.BBox.IsValid() {
			return fmt.Errorf("tile %d: bbox %+v outside normalized bounds", i, tile.BBox)
		}
		if tile.BBox.IsEmpty() {
			return fmt.Errorf("tile %d: bbox %+v has no area", i, tile.BBox)
		}
	}
	return nil
}
