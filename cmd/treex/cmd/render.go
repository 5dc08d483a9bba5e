package cmd

import (
	"os"

	"github.com/spf13/cobra"

	latex "github.com/treex/go-latex"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Print the normalized source form of a document",
	Long: `Parses a LaTeX document and prints it back as source. Recovered
structure comes out normalized: unterminated groups and environments are
closed, bare arguments are braced, stray closers are dropped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	src, err := loadDocument(args)
	if err != nil {
		return err
	}

	opts, err := parseOptions()
	if err != nil {
		return err
	}

	root, diags := latex.Parse(src, opts...)
	printDiagnostics(diags)

	return latex.Render(os.Stdout, root)
}
