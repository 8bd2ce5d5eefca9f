// Package merge reconstructs one logical page from the partial, possibly
// redundant results of independently processed tiles. A block straddling a
// tile boundary is re-reported by every tile that sees it; deduplication
// keeps the best-scored recognition of each physical region and discards
// the rest, in the manner of detector-box non-max suppression.
package merge

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/mosaic/model"
)

// TiledModelSuffix tags the model name of a merged result so consumers can
// tell a tile-merged page from a single-pass one.
const TiledModelSuffix = "-tiled"

// Config holds configuration for tile-result merging.
type Config struct {
	// IoUThreshold is the overlap at or above which two blocks are
	// considered recognitions of the same physical region. Default: 0.5
	IoUThreshold float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{IoUThreshold: 0.5}
}

// DeduplicateBlocks removes redundant recognitions of the same physical
// block. Candidates are ranked by mean token confidence, ties broken by
// longer text, then greedily kept unless they overlap an already-kept
// block with IoU at or above the threshold. The operation is idempotent.
func DeduplicateBlocks(blocks []model.Block, iouThreshold float64) []model.Block {
	if len(blocks) <= 1 {
		return append([]model.Block(nil), blocks...)
	}

	sorted := append([]model.Block(nil), blocks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := sorted[i].MeanConfidence(), sorted[j].MeanConfidence()
		if si != sj {
			return si > sj
		}
		return textLength(sorted[i].Text) > textLength(sorted[j].Text)
	})

	kept := make([]model.Block, 0, len(sorted))
	for _, block := range sorted {
		duplicate := false
		for _, k := range kept {
			if block.BBox.IoU(k.BBox) >= iouThreshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, block)
		}
	}

	return kept
}

// textLength measures text in NFKC-normalized runes, so full-width
// characters from Japanese OCR compare equal to their ASCII forms.
func textLength(s string) int {
	return len([]rune(norm.NFKC.String(s)))
}

// MergeTilePages merges the per-tile pages of one physical page into a
// single page. Blocks from all tiles are pooled and deduplicated. Tables
// and figures are concatenated without IoU dedup: duplicates across tiles
// are currently passed through rather than silently dropped. The reading
// order is invalidated, since per-tile order is not globally valid; use
// ComputeReadingOrder to restore one.
//
// Returns nil for empty input, meaning no result exists for this page.
func MergeTilePages(pages []model.Page, config Config) *model.Page {
	if len(pages) == 0 {
		return nil
	}

	merged := model.Page{
		PageIndex: pages[0].PageIndex,
		DPI:       pages[0].DPI,
		WidthPx:   pages[0].WidthPx,
		HeightPx:  pages[0].HeightPx,
	}

	var blocks []model.Block
	for _, p := range pages {
		blocks = append(blocks, p.Blocks...)
		merged.Tables = append(merged.Tables, p.Tables...)
		merged.Figures = append(merged.Figures, p.Figures...)
	}

	merged.Blocks = DeduplicateBlocks(blocks, config.IoUThreshold)

	return &merged
}

// MergeResults combines multiple tile-OCR results into one. Per-tile pages
// are grouped by page index across all results, each group is merged, the
// processing times are summed, and the model name is tagged with the
// "-tiled" suffix to mark provenance.
//
// Returns nil for empty input.
func MergeResults(results []model.Result, config Config) *model.Result {
	if len(results) == 0 {
		return nil
	}

	groups := make(map[int][]model.Page)
	var indexes []int
	var totalTime float64
	var modelName string

	for _, r := range results {
		totalTime += r.ProcessingTime
		if modelName == "" {
			modelName = r.Model
		}
		for _, p := range r.Pages {
			if _, seen := groups[p.PageIndex]; !seen {
				indexes = append(indexes, p.PageIndex)
			}
			groups[p.PageIndex] = append(groups[p.PageIndex], p)
		}
	}

	sort.Ints(indexes)

	merged := model.Result{
		ProcessingTime: totalTime,
		Model:          taggedModel(modelName),
		Pages:          make([]model.Page, 0, len(indexes)),
	}
	for _, idx := range indexes {
		if page := MergeTilePages(groups[idx], config); page != nil {
			merged.Pages = append(merged.Pages, *page)
		}
	}

	return &merged
}

func taggedModel(name string) string {
	if name == "" || strings.HasSuffix(name, TiledModelSuffix) {
		return name
	}
	return name + TiledModelSuffix
}
