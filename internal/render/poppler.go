// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/pedagogy-tools/internal/container"
	"github.com/pdiddy/pedagogy-tools/pkg/types"
)

// imagePoppler is a local image providing pdfinfo and pdftocairo.
const imagePoppler = "poppler:latest"

// pdfinfo cannot read stdin, so the document is spooled inside the container.
const pdfinfoScript = "cat > /tmp/in.pdf && pdfinfo -f 1 -l 999999 /tmp/in.pdf"

var (
	pagesLine = regexp.MustCompile(`(?m)^Pages:\s+(\d+)\s*$`)
	sizeLine  = regexp.MustCompile(`(?m)^Page\s+(\d+)\s+size:\s+([0-9.]+)\s+x\s+([0-9.]+)\s+pts`)
	rotLine   = regexp.MustCompile(`(?m)^Page\s+(\d+)\s+rot:\s+(-?\d+)`)
)

// Poppler renders pages with poppler-utils in a container. Page geometry is
// read once with pdfinfo when the document is opened; each render runs
// pdftocairo with the PDF piped on stdin and the PNG read from stdout.
type Poppler struct {
	rt    container.Runtime
	path  string
	pages []types.Rect
}

// OpenPoppler checks that the poppler image is available and reads the page
// geometry of the PDF at path.
func OpenPoppler(rt container.Runtime, path string) (*Poppler, error) {
	if err := rt.ImageExists(imagePoppler); err != nil {
		return nil, fmt.Errorf("poppler image not available in %s: %w", rt.Name(), err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := rt.Run(imagePoppler, []string{"sh", "-c", pdfinfoScript}, f, &out); err != nil {
		return nil, fmt.Errorf("reading page geometry of %s: %w", path, err)
	}

	pages, err := parsePDFInfo(out.String())
	if err != nil {
		return nil, fmt.Errorf("parsing pdfinfo output for %s: %w", path, err)
	}
	return &Poppler{rt: rt, path: path, pages: pages}, nil
}

// PageCount returns the number of pages reported by pdfinfo.
func (p *Poppler) PageCount() int {
	return len(p.pages)
}

// PageBounds returns the displayed size of page i, anchored at the origin.
func (p *Poppler) PageBounds(i int) (types.Rect, error) {
	if i < 0 || i >= len(p.pages) {
		return types.Rect{}, fmt.Errorf("page %d out of range (document has %d pages)", i+1, len(p.pages))
	}
	r := p.pages[i]
	if r.Empty() {
		return types.Rect{}, fmt.Errorf("page %d: pdfinfo reported no size", i+1)
	}
	return r, nil
}

// Render crops page i to clip with pdftocairo at native resolution.
func (p *Poppler) Render(i int, clip types.Rect) (image.Image, error) {
	page, err := p.PageBounds(i)
	if err != nil {
		return nil, err
	}
	px := clip.Pixels().Sub(page.Pixels().Min)
	if px.Empty() {
		return nil, fmt.Errorf("page %d: empty clip %v", i+1, clip)
	}

	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", p.path, err)
	}
	defer f.Close()

	n := strconv.Itoa(i + 1)
	args := []string{
		"pdftocairo", "-png", "-singlefile",
		"-f", n, "-l", n,
		"-r", strconv.Itoa(nativeDPI),
		"-x", strconv.Itoa(px.Min.X), "-y", strconv.Itoa(px.Min.Y),
		"-W", strconv.Itoa(px.Dx()), "-H", strconv.Itoa(px.Dy()),
		"-", "-",
	}

	var out bytes.Buffer
	if err := p.rt.Run(imagePoppler, args, f, &out); err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", i+1, err)
	}

	img, err := png.Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("decoding page %d: %w", i+1, err)
	}
	return img, nil
}

// Close is a no-op; every command runs in its own throwaway container.
func (p *Poppler) Close() error { return nil }

// parsePDFInfo extracts per-page sizes from `pdfinfo -f 1 -l N` output.
// Pages rotated by 90 or 270 degrees have their width and height swapped.
func parsePDFInfo(out string) ([]types.Rect, error) {
	m := pagesLine.FindStringSubmatch(out)
	if m == nil {
		return nil, fmt.Errorf("no page count in output")
	}
	count, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, fmt.Errorf("page count %q: %w", m[1], err)
	}

	pages := make([]types.Rect, count)
	for _, s := range sizeLine.FindAllStringSubmatch(out, -1) {
		n, _ := strconv.Atoi(s[1])
		if n < 1 || n > count {
			continue
		}
		w, errW := strconv.ParseFloat(s[2], 64)
		h, errH := strconv.ParseFloat(s[3], 64)
		if errW != nil || errH != nil {
			return nil, fmt.Errorf("page %d size %q x %q", n, s[2], s[3])
		}
		pages[n-1] = types.Rect{X1: w, Y1: h}
	}

	for _, s := range rotLine.FindAllStringSubmatch(out, -1) {
		n, _ := strconv.Atoi(s[1])
		rot, _ := strconv.Atoi(strings.TrimSpace(s[2]))
		if n < 1 || n > count {
			continue
		}
		if rot = ((rot % 360) + 360) % 360; rot == 90 || rot == 270 {
			r := pages[n-1]
			pages[n-1] = types.Rect{X1: r.Y1, Y1: r.X1}
		}
	}
	return pages, nil
}
