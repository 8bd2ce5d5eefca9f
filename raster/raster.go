// Package raster provides the pixel-side helpers at the rendering boundary
// of the pipeline: cropping tile images for the OCR collaborator, rescaling
// pages between DPIs, and drawing tile outlines for inspection. Nothing in
// here renders documents; rasterization itself belongs to an external
// collaborator.
package raster

import (
	"image"
	"image/color"
	stddraw "image/draw"
	"math"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/tsawler/mosaic/model"
)

// TileRect converts a tile's normalized box into the pixel rectangle it
// occupies on a page of the given size, clipped to the page.
func TileRect(tile model.Tile, widthPx, heightPx int) image.Rectangle {
	w := float64(widthPx)
	h := float64(heightPx)

	x0 := int(math.Floor(tile.BBox.Left() * w))
	y0 := int(math.Floor(tile.BBox.Top() * h))
	x1 := int(math.Ceil(tile.BBox.Right() * w))
	y1 := int(math.Ceil(tile.BBox.Bottom() * h))

	return image.Rect(x0, y0, x1, y1).Intersect(image.Rect(0, 0, widthPx, heightPx))
}

// CropTile extracts the tile's region from a page raster. The crop is what
// gets handed to the OCR collaborator for this tile.
func CropTile(img image.Image, tile model.Tile) image.Image {
	bounds := img.Bounds()
	rect := TileRect(tile, bounds.Dx(), bounds.Dy()).Add(bounds.Min)
	return imaging.Crop(img, rect)
}

// ScaleToDPI resamples a page raster from one DPI to another, for
// normalizing input images to the pipeline's working resolution. Returns
// the image unchanged when the DPIs already match or either is
// non-positive.
func ScaleToDPI(img image.Image, fromDPI, toDPI int) image.Image {
	if fromDPI <= 0 || toDPI <= 0 || fromDPI == toDPI {
		return img
	}

	scale := float64(toDPI) / float64(fromDPI)
	bounds := img.Bounds()
	w := int(math.Round(float64(bounds.Dx()) * scale))
	h := int(math.Round(float64(bounds.Dy()) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}

// DrawTileOutlines copies the page raster and draws a one-pixel outline
// around every tile, for visually checking a tile plan against a page.
func DrawTileOutlines(img image.Image, tiles []model.Tile, outline color.Color) image.Image {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	stddraw.Draw(out, bounds, img, bounds.Min, stddraw.Src)

	for _, tile := range tiles {
		rect := TileRect(tile, bounds.Dx(), bounds.Dy()).Add(bounds.Min)
		for x := rect.Min.X; x < rect.Max.X; x++ {
			out.Set(x, rect.Min.Y, outline)
			out.Set(x, rect.Max.Y-1, outline)
		}
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			out.Set(rect.Min.X, y, outline)
			out.Set(rect.Max.X-1, y, outline)
		}
	}

	return out
}
