package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	latex "github.com/treex/go-latex"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Print the syntax tree of a document",
	Long: `Parses a LaTeX document and prints its syntax tree. Reads stdin when
no file is given. Structural problems are reported on stderr; the tree is
printed either way.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
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

	fmt.Print(latex.Tree(root))
	return nil
}
