// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package images

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pedagogy-tools/pkg/types"
)

// ManifestFile is the manifest filename inside the output directory.
const ManifestFile = "manifest.yaml"

// Manifest maps each saved image back to its source page.
type Manifest struct {
	Source      string              `yaml:"source"`
	StartPage   int                 `yaml:"start_page"`
	Backend     types.RenderBackend `yaml:"backend,omitempty"`
	ExtractedAt string              `yaml:"extracted_at"`
	Attempted   int                 `yaml:"attempted"`
	Failed      []int               `yaml:"failed_pages,omitempty"`
	Images      []types.PageImage   `yaml:"images"`
}

// NewManifest builds the manifest of a finished run.
func NewManifest(cfg types.ExtractionConfig, res Result) Manifest {
	m := Manifest{
		Source:      cfg.PDFPath,
		StartPage:   cfg.StartPage,
		Backend:     cfg.Backend,
		ExtractedAt: time.Now().UTC().Format(time.RFC3339),
		Attempted:   res.Attempted,
		Images:      res.Images,
	}
	if m.Images == nil {
		m.Images = []types.PageImage{}
	}
	for _, e := range res.Errors {
		m.Failed = append(m.Failed, e.Page)
	}
	return m
}

// WriteManifest writes the YAML manifest of a run to path.
func WriteManifest(path string, cfg types.ExtractionConfig, res Result) error {
	data, err := yaml.Marshal(NewManifest(cfg, res))
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}
