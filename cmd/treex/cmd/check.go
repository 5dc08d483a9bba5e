package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	latex "github.com/treex/go-latex"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Report structural problems in a document",
	Long: `Parses a LaTeX document and reports every structural problem found:
unterminated groups, mismatched environments, mismatched math delimiters and
stray closers. Exits non-zero when any error is found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	src, err := loadDocument(args)
	if err != nil {
		return err
	}

	opts, err := parseOptions()
	if err != nil {
		return err
	}

	_, diags := latex.Parse(src, opts...)
	printDiagnostics(diags)

	errors := 0
	for _, d := range diags {
		if d.Severity == latex.Error {
			errors++
		}
	}

	if errors > 0 {
		return fmt.Errorf("found %d problem(s)", errors)
	}

	return nil
}
