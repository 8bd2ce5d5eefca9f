package ocr

import (
	"fmt"

	"github.com/tsawler/mosaic/model"
)

// Word is a single recognized word in pixel coordinates, as reported by
// the OCR engine before normalization.
type Word struct {
	Text       string
	BBox       model.PixelBBox
	Confidence float64
}

// wordsToPage normalizes raw word boxes against the page dimensions and
// wraps each word as its own block, the shape recognition-only output
// takes: precise text positions without layout structure.
func wordsToPage(words []Word, pageIndex, dpi, widthPx, heightPx int) (*model.Page, error) {
	page := &model.Page{
		PageIndex: pageIndex,
		DPI:       dpi,
		WidthPx:   widthPx,
		HeightPx:  heightPx,
		Blocks:    make([]model.Block, 0, len(words)),
	}

	for _, w := range words {
		bbox, err := model.ToNormalized(w.BBox, float64(widthPx), float64(heightPx))
		if err != nil {
			return nil, fmt.Errorf("normalizing word box: %w", err)
		}
		if !bbox.IsValid() {
			continue
		}
		page.Blocks = append(page.Blocks, wordToBlock(w.Text, bbox, w.Confidence))
	}

	return page, nil
}

// tileWordsToPage normalizes word boxes recognized inside a tile crop into
// full-page coordinates: tile-local pixels are scaled by the page
// dimensions and offset by the tile's origin.
func tileWordsToPage(words []Word, tile model.Tile, dpi, pageWidthPx, pageHeightPx int) (*model.Page, error) {
	if pageWidthPx <= 0 || pageHeightPx <= 0 {
		return nil, fmt.Errorf("tile words to page: %w (got %dx%d)", model.ErrBadDimensions, pageWidthPx, pageHeightPx)
	}

	page := &model.Page{
		PageIndex: tile.PageIndex,
		DPI:       dpi,
		WidthPx:   pageWidthPx,
		HeightPx:  pageHeightPx,
		Blocks:    make([]model.Block, 0, len(words)),
	}

	for _, w := range words {
		bbox := model.NormBBox{
			X: tile.BBox.X + w.BBox.X/float64(pageWidthPx),
			Y: tile.BBox.Y + w.BBox.Y/float64(pageHeightPx),
			W: w.BBox.W / float64(pageWidthPx),
			H: w.BBox.H / float64(pageHeightPx),
		}.Clamp()
		if !bbox.IsValid() || bbox.IsEmpty() {
			continue
		}
		page.Blocks = append(page.Blocks, wordToBlock(w.Text, bbox, w.Confidence))
	}

	return page, nil
}

func wordToBlock(text string, bbox model.NormBBox, confidence float64) model.Block {
	c := confidence
	token := model.Token{Text: text, BBox: bbox, Confidence: &c}
	return model.Block{
		Text:      text,
		BBox:      bbox,
		BlockType: "ocr_word",
		Lines:     []model.Line{{Text: text, BBox: bbox, Tokens: []model.Token{token}}},
	}
}
