// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"image"
	"math"
)

// Rect is a page rectangle in PDF points (the document's native 72 dpi
// space). X grows rightwards and Y downwards, as in MuPDF.
type Rect struct {
	X0 float64 `json:"x0" yaml:"x0"`
	Y0 float64 `json:"y0" yaml:"y0"`
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
}

// Width returns X1 - X0.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns Y1 - Y0.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.X1 <= r.X0 || r.Y1 <= r.Y0 }

// Pixels converts the rectangle to integer pixel coordinates at 72 dpi,
// rounding outwards so that partially covered pixels are kept.
func (r Rect) Pixels() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X0)), int(math.Floor(r.Y0)),
		int(math.Ceil(r.X1)), int(math.Ceil(r.Y1)),
	)
}

// RectFromPixels is the inverse of Pixels for integer rectangles.
func RectFromPixels(p image.Rectangle) Rect {
	return Rect{
		X0: float64(p.Min.X), Y0: float64(p.Min.Y),
		X1: float64(p.Max.X), Y1: float64(p.Max.Y),
	}
}

// PageImage records one saved crop.
type PageImage struct {
	// Page is the one-based page number in the source document.
	Page int `json:"page" yaml:"page"`

	// File is the image filename relative to the output directory.
	File string `json:"file" yaml:"file"`

	// Width and Height are the saved image dimensions in pixels.
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}
