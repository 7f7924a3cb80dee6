// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SQLGenConfig holds settings for the SQL generator.
type SQLGenConfig struct {
	// Input is the path to the JSON file holding the exercise list.
	Input string `json:"input" yaml:"input"`

	// Output overrides the derived output path. "-" writes the SQL to the
	// command output instead of a file. Empty means derive from Input.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
}

// RenderBackend identifies the PDF rendering tool.
type RenderBackend string

const (
	BackendMuPDF   RenderBackend = "mupdf"
	BackendPoppler RenderBackend = "poppler"
)

// ExtractionConfig holds settings for the page image extractor.
type ExtractionConfig struct {
	// PDFPath is the source document.
	PDFPath string `json:"pdf" yaml:"pdf"`

	// OutputDir receives the PNG crops. Created with its parents if missing.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// StartPage is the zero-based index of the first page to crop (default 19).
	StartPage int `json:"start_page" yaml:"start_page"`

	// Prefix is the image filename prefix (default "fichePeda_jeux").
	Prefix string `json:"prefix" yaml:"prefix"`

	// Backend selects the renderer: mupdf or poppler.
	Backend RenderBackend `json:"backend" yaml:"backend"`

	// Manifest enables writing manifest.yaml next to the images.
	Manifest bool `json:"manifest" yaml:"manifest"`
}

// ToolsConfig groups the configuration of every subcommand, mirroring the
// layout of the config file.
type ToolsConfig struct {
	SQL    SQLGenConfig     `json:"sql" yaml:"sql"`
	Images ExtractionConfig `json:"images" yaml:"images"`
}
