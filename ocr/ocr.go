//go:build ocr

// Package ocr provides a local, Tesseract-backed recognition collaborator
// for the tiling pipeline. It wraps the Tesseract OCR engine via gosseract
// and requires Tesseract to be installed on the system. On macOS, install
// via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// The geometry and merge packages never call this package; any collaborator
// producing normalized pages can stand in for it.
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/mosaic/model"
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+jpn").
// Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// RecognizeText performs plain OCR on image data (PNG, TIFF, JPEG, etc.)
// and returns the recognized text with surrounding whitespace trimmed.
func (c *Client) RecognizeText(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// RecognizePage performs word-level OCR on a full-page image and returns a
// Page in normalized coordinates. widthPx and heightPx are the dimensions
// of the supplied image.
func (c *Client) RecognizePage(imageData []byte, pageIndex, dpi, widthPx, heightPx int) (*model.Page, error) {
	words, err := c.recognizeWords(imageData)
	if err != nil {
		return nil, err
	}

	return wordsToPage(words, pageIndex, dpi, widthPx, heightPx)
}

// RecognizeTile performs word-level OCR on a tile crop and returns a Page
// whose blocks are expressed in full-page normalized coordinates, offset by
// the tile's origin. The returned page carries the full page dimensions, so
// its output feeds directly into the merge package.
func (c *Client) RecognizeTile(imageData []byte, tile model.Tile, dpi, pageWidthPx, pageHeightPx int) (*model.Page, error) {
	words, err := c.recognizeWords(imageData)
	if err != nil {
		return nil, err
	}

	return tileWordsToPage(words, tile, dpi, pageWidthPx, pageHeightPx)
}

func (c *Client) recognizeWords(imageData []byte) ([]Word, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	words := make([]Word, 0, len(boxes))
	for _, b := range boxes {
		words = append(words, Word{
			Text: b.Word,
			BBox: model.PixelBBox{
				X: float64(b.Box.Min.X),
				Y: float64(b.Box.Min.Y),
				W: float64(b.Box.Dx()),
				H: float64(b.Box.Dy()),
			},
			// Tesseract reports confidence in [0,100].
			Confidence: b.Confidence / 100,
		})
	}

	return words, nil
}
