package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pedagogy-tools/internal/images"
	"github.com/pdiddy/pedagogy-tools/internal/render"
	"github.com/pdiddy/pedagogy-tools/pkg/types"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Crop the left half of each PDF page into numbered PNG files",
	Long: `Images opens the exercise booklet PDF and, from the start page to the
last page, saves the left half of every page as <prefix>_<n>.png in the
output directory. Numbers count saved images from 1; a page that fails is
reported and skipped. The PDF, output directory, and start page come from
flags, PEDAGOGY_IMAGES_* environment variables, or the config file.`,
	Args: cobra.NoArgs,
	RunE: runImages,
}

func init() {
	f := imagesCmd.Flags()
	f.String("pdf", "", "source PDF file")
	f.String("output-dir", "", "directory receiving the PNG files (created if missing)")
	f.Int("start-page", images.DefaultStartPage, "zero-based index of the first page to crop")
	f.String("prefix", images.DefaultPrefix, "image filename prefix")
	f.String("backend", string(types.BackendMuPDF), "render backend: mupdf or poppler")
	f.Bool("manifest", false, "write "+images.ManifestFile+" mapping images to source pages")

	for key, flag := range map[string]string{
		"images.pdf":        "pdf",
		"images.output_dir": "output-dir",
		"images.start_page": "start-page",
		"images.prefix":     "prefix",
		"images.backend":    "backend",
		"images.manifest":   "manifest",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(imagesCmd)
}

func extractionConfig() types.ExtractionConfig {
	return types.ExtractionConfig{
		PDFPath:   viper.GetString("images.pdf"),
		OutputDir: viper.GetString("images.output_dir"),
		StartPage: viper.GetInt("images.start_page"),
		Prefix:    viper.GetString("images.prefix"),
		Backend:   types.RenderBackend(viper.GetString("images.backend")),
		Manifest:  viper.GetBool("images.manifest"),
	}
}

// runImages reports every failure as a printed diagnostic and returns nil.
func runImages(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg := extractionConfig()

	open, err := render.NewOpener(cfg.Backend)
	if err != nil {
		fmt.Fprintf(out, "[ERROR] %v\n", err)
		return nil
	}

	res, err := images.Run(open, cfg, out)
	switch {
	case errors.Is(err, images.ErrDocumentOpen):
		fmt.Fprintf(out, "Error opening PDF: %v\n", err)
	case err != nil:
		fmt.Fprintf(out, "[ERROR] %v\n", err)
	case res.HasFailures():
		fmt.Fprintf(out, "[INFO] %d page(s) failed and were skipped\n", res.Failed)
	}
	return nil
}
