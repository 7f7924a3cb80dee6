// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package images crops the left half of PDF pages into numbered PNG files.
// Rendering is delegated to a Document implementation (see package render).
package images

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pdiddy/pedagogy-tools/pkg/types"
)

const (
	// DefaultPrefix is the image filename prefix.
	DefaultPrefix = "fichePeda_jeux"

	// DefaultStartPage is the zero-based index of the first cropped page
	// (page 20 of the exercise booklet).
	DefaultStartPage = 19

	// listLimit is how many output filenames Run prints for verification.
	listLimit = 10
)

// ErrDocumentOpen means the source PDF could not be opened; no page was
// processed.
var ErrDocumentOpen = errors.New("cannot open document")

// Document is an open PDF. Page indexes are zero-based.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageBounds returns the page's visual bounds in PDF points.
	PageBounds(i int) (types.Rect, error)

	// Render rasterizes the part of page i inside clip at the document's
	// native resolution.
	Render(i int, clip types.Rect) (image.Image, error)

	// Close releases the document.
	Close() error
}

// Opener opens the document at path.
type Opener func(path string) (Document, error)

// PageError records the failure of one page. The run continues past it.
type PageError struct {
	// Page is the one-based page number.
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error { return e.Err }

// Result holds the outcome of an extraction run.
type Result struct {
	Attempted int
	Saved     int
	Failed    int

	// Images lists the saved crops in save order.
	Images []types.PageImage

	// Errors holds one entry per failed page.
	Errors []*PageError
}

// HasFailures reports whether any page failed.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// LeftHalf returns the left 50% of r at full height.
func LeftHalf(r types.Rect) types.Rect {
	return types.Rect{X0: r.X0, Y0: r.Y0, X1: (r.X0 + r.X1) / 2, Y1: r.Y1}
}

// ImageName returns the filename of the n-th saved crop.
func ImageName(prefix string, n int) string {
	return fmt.Sprintf("%s_%d.png", prefix, n)
}

// EnsureDir creates dir and any missing parents, reporting creation to w.
func EnsureDir(dir string, w io.Writer) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	fmt.Fprintf(w, "Created output directory: %s\n", dir)
	return nil
}

// ExtractPages crops every page from cfg.StartPage to the last page and
// saves the left halves as <prefix>_<n>.png in cfg.OutputDir, with n
// counting successful saves from 1. A failing page is logged to w and
// skipped without consuming a number.
func ExtractPages(doc Document, cfg types.ExtractionConfig, w io.Writer) Result {
	var res Result
	counter := 1

	for i := max(cfg.StartPage, 0); i < doc.PageCount(); i++ {
		res.Attempted++
		fmt.Fprintf(w, "Processing page %d...\n", i+1)

		img, err := savePage(doc, i, cfg.OutputDir, ImageName(cfg.Prefix, counter))
		if err != nil {
			pe := &PageError{Page: i + 1, Err: err}
			res.Failed++
			res.Errors = append(res.Errors, pe)
			fmt.Fprintf(w, "    Error processing page %d: %v\n", pe.Page, pe.Err)
			continue
		}

		fmt.Fprintf(w, "    Saved: %s\n", img.File)
		res.Images = append(res.Images, img)
		res.Saved++
		counter++
	}
	return res
}

func savePage(doc Document, i int, dir, name string) (types.PageImage, error) {
	bounds, err := doc.PageBounds(i)
	if err != nil {
		return types.PageImage{}, err
	}
	clip := LeftHalf(bounds)
	if clip.Empty() {
		return types.PageImage{}, fmt.Errorf("page has no area: %+v", bounds)
	}

	img, err := doc.Render(i, clip)
	if err != nil {
		return types.PageImage{}, err
	}

	path := filepath.Join(dir, name)
	if err := writePNG(path, img); err != nil {
		return types.PageImage{}, err
	}

	b := img.Bounds()
	return types.PageImage{Page: i + 1, File: name, Width: b.Dx(), Height: b.Dy()}, nil
}

// writePNG encodes img to path. A partially written file is removed.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// Run performs a full extraction: it creates the output directory, opens
// the document, crops the pages, optionally writes the manifest, and lists
// the output directory. A document that cannot be opened aborts the run
// with ErrDocumentOpen before any page is processed.
func Run(open Opener, cfg types.ExtractionConfig, w io.Writer) (Result, error) {
	if cfg.PDFPath == "" {
		return Result{}, errors.New("no PDF path configured")
	}
	if cfg.OutputDir == "" {
		return Result{}, errors.New("no output directory configured")
	}
	if cfg.StartPage < 0 {
		return Result{}, fmt.Errorf("start page must be zero or positive, got %d", cfg.StartPage)
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}

	if err := EnsureDir(cfg.OutputDir, w); err != nil {
		return Result{}, err
	}

	doc, err := open(cfg.PDFPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w %s: %v", ErrDocumentOpen, cfg.PDFPath, err)
	}
	defer doc.Close()
	fmt.Fprintf(w, "Opened PDF: %s\n", cfg.PDFPath)

	res := ExtractPages(doc, cfg, w)
	fmt.Fprintf(w, "Extraction complete. Saved %d images.\n", res.Saved)

	if cfg.Manifest {
		path := filepath.Join(cfg.OutputDir, ManifestFile)
		if err := WriteManifest(path, cfg, res); err != nil {
			return res, err
		}
		fmt.Fprintf(w, "Manifest written: %s\n", path)
	}

	if err := ListDir(cfg.OutputDir, listLimit, w); err != nil {
		return res, err
	}
	return res, nil
}

// ListDir prints the names in dir, sorted, up to limit entries, followed by
// a count of the remainder.
func ListDir(dir string, limit int, w io.Writer) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", dir, err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	sort.Strings(names)

	fmt.Fprintf(w, "Files in %s:\n", dir)
	for _, n := range names[:min(limit, len(names))] {
		fmt.Fprintf(w, " - %s\n", n)
	}
	if len(names) > limit {
		fmt.Fprintf(w, " ... and %d more.\n", len(names)-limit)
	}
	return nil
}
