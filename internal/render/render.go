// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render opens PDF documents for the page image extractor. Two
// backends implement images.Document: MuPDF through go-fitz, and poppler
// running inside a container.
package render

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/pdiddy/pedagogy-tools/internal/container"
	"github.com/pdiddy/pedagogy-tools/internal/images"
	"github.com/pdiddy/pedagogy-tools/pkg/types"
)

// nativeDPI is the resolution at which one pixel equals one PDF point.
const nativeDPI = 72

// NewOpener returns an images.Opener for the given backend. An empty
// backend selects MuPDF.
func NewOpener(backend types.RenderBackend) (images.Opener, error) {
	switch backend {
	case "", types.BackendMuPDF:
		return func(path string) (images.Document, error) {
			return OpenMuPDF(path)
		}, nil
	case types.BackendPoppler:
		return func(path string) (images.Document, error) {
			rt, err := container.DetectRuntime()
			if err != nil {
				return nil, err
			}
			return OpenPoppler(rt, path)
		}, nil
	default:
		return nil, fmt.Errorf("unknown render backend %q (want %s or %s)",
			backend, types.BackendMuPDF, types.BackendPoppler)
	}
}

// crop copies the part of src inside r into a new image whose origin is
// (0, 0), so encoders do not carry the source offset.
func crop(src image.Image, r image.Rectangle) (*image.RGBA, error) {
	r = r.Intersect(src.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("clip %v lies outside the rendered page %v", r, src.Bounds())
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	return dst, nil
}
