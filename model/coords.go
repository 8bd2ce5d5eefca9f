package model

import (
	"errors"
	"fmt"
)

// ErrBadDimensions is returned when a coordinate conversion is given a
// non-positive page width, height, or DPI. This is a caller-contract
// violation: downstream IoU and clustering math assumes finite boxes, so
// conversions fail fast instead of propagating NaN or Inf.
var ErrBadDimensions = errors.New("page dimensions must be positive")

// PixelBBox represents a bounding box in absolute pixel coordinates with a
// top-left origin. Pixel coordinates exist only transiently at the edges of
// the pipeline (raster in, overlay out) and must never be mixed with
// normalized coordinates without explicit conversion.
type PixelBBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// PointBBox represents a bounding box in PDF points (72 per inch), used
// when re-embedding overlay annotations into a PDF page.
type PointBBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// ToNormalized converts a pixel box to normalized coordinates by dividing
// each field by the page dimensions.
func ToNormalized(b PixelBBox, widthPx, heightPx float64) (NormBBox, error) {
	if widthPx <= 0 || heightPx <= 0 {
		return NormBBox{}, fmt.Errorf("normalizing bbox: %w (got %gx%g)", ErrBadDimensions, widthPx, heightPx)
	}

	return NormBBox{
		X: b.X / widthPx,
		Y: b.Y / heightPx,
		W: b.W / widthPx,
		H: b.H / heightPx,
	}, nil
}

// FromNormalized converts a normalized box back to pixel coordinates. It is
// the exact inverse of ToNormalized: round-tripping a box stays within 1e-5
// absolute error per field.
func FromNormalized(b NormBBox, widthPx, heightPx float64) (PixelBBox, error) {
	if widthPx <= 0 || heightPx <= 0 {
		return PixelBBox{}, fmt.Errorf("denormalizing bbox: %w (got %gx%g)", ErrBadDimensions, widthPx, heightPx)
	}

	return PixelBBox{
		X: b.X * widthPx,
		Y: b.Y * heightPx,
		W: b.W * widthPx,
		H: b.H * heightPx,
	}, nil
}

// PixelToPoint converts a pixel box to PDF points at the given DPI.
func PixelToPoint(b PixelBBox, dpi float64) (PointBBox, error) {
	if dpi <= 0 {
		return PointBBox{}, fmt.Errorf("pixel to point: %w (dpi %g)", ErrBadDimensions, dpi)
	}

	s := 72 / dpi
	return PointBBox{X: b.X * s, Y: b.Y * s, W: b.W * s, H: b.H * s}, nil
}

// PointToPixel converts a PDF-point box to pixels at the given DPI.
func PointToPixel(b PointBBox, dpi float64) (PixelBBox, error) {
	if dpi <= 0 {
		return PixelBBox{}, fmt.Errorf("point to pixel: %w (dpi %g)", ErrBadDimensions, dpi)
	}

	s := dpi / 72
	return PixelBBox{X: b.X * s, Y: b.Y * s, W: b.W * s, H: b.H * s}, nil
}

// Scale scales a pixel box uniformly, for resolution changes.
func Scale(b PixelBBox, factor float64) PixelBBox {
	return PixelBBox{X: b.X * factor, Y: b.Y * factor, W: b.W * factor, H: b.H * factor}
}
