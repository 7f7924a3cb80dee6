// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sqlgen turns a JSON list of pedagogy exercise records into SQL
// INSERT statements for the pedagogy_sheets table. The SQL is only written
// as text; nothing here connects to a database.
package sqlgen

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pdiddy/pedagogy-tools/pkg/types"
)

// DefaultOutput is the output filename used when the input has neither a
// .json nor a .txt extension.
const DefaultOutput = "pedagogy_inserts.sql"

// StdoutOutput as the configured output writes the SQL to the command output.
const StdoutOutput = "-"

var (
	// ErrInputNotFound means the input path does not name an existing file.
	ErrInputNotFound = errors.New("input file not found")

	// ErrFormat means the input is not valid JSON or not a list of objects.
	ErrFormat = errors.New("invalid exercise file")
)

// Result holds the outcome of a generation run.
type Result struct {
	// Output is the path written, or "-" for the command output.
	Output string

	// Records is the number of exercises turned into statements.
	Records int
}

// OutputPath derives the SQL filename from the input path by replacing a
// trailing .json or .txt extension with .sql. Any other input yields
// DefaultOutput.
func OutputPath(input string) string {
	switch ext := filepath.Ext(input); ext {
	case ".json", ".txt":
		return input[:len(input)-len(ext)] + ".sql"
	default:
		return DefaultOutput
	}
}

// GenerateFile reads cfg.Input, generates the statements, and writes them to
// cfg.Output (or the derived path). A missing input or a format error leaves
// no output behind. Status lines are printed to w.
func GenerateFile(cfg types.SQLGenConfig, w io.Writer) (Result, error) {
	f, err := os.Open(cfg.Input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrInputNotFound, cfg.Input)
		}
		return Result{}, fmt.Errorf("opening %s: %w", cfg.Input, err)
	}
	defer f.Close()

	records, err := ParseRecords(f)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", cfg.Input, err)
	}

	sql := Generate(records)

	out := cfg.Output
	if out == "" {
		out = OutputPath(cfg.Input)
	}
	res := Result{Output: out, Records: len(records)}

	if out == StdoutOutput {
		if _, err := io.WriteString(w, sql); err != nil {
			return res, fmt.Errorf("writing SQL: %w", err)
		}
		return res, nil
	}

	if err := os.WriteFile(out, []byte(sql), 0o644); err != nil {
		return res, fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Fprintf(w, "[OK] SQL file written: %s\n", out)
	fmt.Fprintf(w, "[INFO] Exercises processed: %d\n", res.Records)
	return res, nil
}
