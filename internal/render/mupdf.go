// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"

	"github.com/pdiddy/pedagogy-tools/pkg/types"
)

// MuPDF renders pages with the MuPDF library. It is not safe for concurrent
// use.
type MuPDF struct {
	doc  *fitz.Document
	path string
}

// OpenMuPDF opens the PDF at path.
func OpenMuPDF(path string) (*MuPDF, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s with mupdf: %w", path, err)
	}
	return &MuPDF{doc: doc, path: path}, nil
}

// PageCount returns the number of pages in the document.
func (m *MuPDF) PageCount() int {
	return m.doc.NumPage()
}

// PageBounds returns the bounding rectangle of page i in PDF points.
func (m *MuPDF) PageBounds(i int) (types.Rect, error) {
	b, err := m.doc.Bound(i)
	if err != nil {
		return types.Rect{}, fmt.Errorf("page %d bounds: %w", i+1, err)
	}
	return types.RectFromPixels(b), nil
}

// Render rasterizes page i at native resolution and returns the region
// inside clip, given in the same coordinates as PageBounds.
func (m *MuPDF) Render(i int, clip types.Rect) (image.Image, error) {
	page, err := m.doc.Bound(i)
	if err != nil {
		return nil, fmt.Errorf("page %d bounds: %w", i+1, err)
	}
	img, err := m.doc.ImageDPI(i, nativeDPI)
	if err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", i+1, err)
	}

	// The pixmap may be anchored at the page origin or at (0, 0).
	offset := img.Bounds().Min.Sub(page.Min)
	return crop(img, clip.Pixels().Add(offset))
}

// Close releases the MuPDF document.
func (m *MuPDF) Close() error {
	return m.doc.Close()
}
