package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pedagogy-tools/internal/sqlgen"
	"github.com/pdiddy/pedagogy-tools/pkg/types"
)

var sqlCmd = &cobra.Command{
	Use:   "sql [input.json]",
	Short: "Generate pedagogy_sheets INSERT statements from a JSON exercise list",
	Long: `Sql reads a JSON array of exercise records and writes one INSERT per
exercise into a .sql file next to the input (input.json becomes input.sql).
Each statement skips the insert when a sheet with the same title exists.
Without an argument the input path is read from standard input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSQL,
}

func init() {
	sqlCmd.Flags().StringP("output", "o", "", `output file (default: input with .sql extension; "-" for stdout)`)
	_ = viper.BindPFlag("sql.output", sqlCmd.Flags().Lookup("output"))

	rootCmd.AddCommand(sqlCmd)
}

// runSQL reports every failure as a printed diagnostic and returns nil.
func runSQL(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var input string
	if len(args) > 0 {
		input = args[0]
	} else {
		var err error
		input, err = promptInput(cmd.InOrStdin(), out)
		if err != nil {
			fmt.Fprintf(out, "[ERROR] %v\n", err)
			return nil
		}
	}

	cfg := types.SQLGenConfig{
		Input:  input,
		Output: viper.GetString("sql.output"),
	}
	if _, err := sqlgen.GenerateFile(cfg, out); err != nil {
		reportSQLError(out, input, err)
	}
	return nil
}

// promptInput asks for the JSON input path and reads one line.
func promptInput(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Path to the JSON input file: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input path: %w", err)
	}
	path := strings.TrimSpace(line)
	if path == "" {
		return "", errors.New("no input file given")
	}
	return path, nil
}

func reportSQLError(w io.Writer, input string, err error) {
	switch {
	case errors.Is(err, sqlgen.ErrInputNotFound):
		fmt.Fprintf(w, "[ERROR] File '%s' was not found\n", input)
	case errors.Is(err, sqlgen.ErrFormat):
		fmt.Fprintf(w, "[ERROR] JSON parsing error: %v\n", err)
	default:
		fmt.Fprintf(w, "[ERROR] %v\n", err)
	}
}
