package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	latex "github.com/treex/go-latex"
)

var (
	symbolsFile string
	relaxed     bool
)

var rootCmd = &cobra.Command{
	Use:   "treex",
	Short: "LaTeX syntax tree toolkit",
	Long: `treex parses LaTeX source into a syntax tree and reports structural
problems without ever giving up on the input.

Commands:
  parse   - print the syntax tree of a document
  check   - report structural problems, non-zero exit on errors
  render  - print the normalized source form of a document`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&symbolsFile, "symbols", "", "YAML file with extra command and environment arities")
	rootCmd.PersistentFlags().BoolVar(&relaxed, "relaxed", false, "allow whitespace before optional arguments")
}

// loadDocument reads the document named by args, or stdin when no file is given.
func loadDocument(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("unable to read stdin: %w", err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("unable to read document: %w", err)
	}

	return string(data), nil
}

// parseOptions assembles parser options from the persistent flags.
func parseOptions() ([]latex.Option, error) {
	var opts []latex.Option

	if symbolsFile != "" {
		table, err := loadSymbols(symbolsFile)
		if err != nil {
			return nil, err
		}

		opts = append(opts, latex.WithSymbols(table))
	}

	if relaxed {
		opts = append(opts, latex.WithRelaxedOptionals())
	}

	return opts, nil
}

type arityConfig struct {
	Optional int `yaml:"optional"`
	Required int `yaml:"required"`
}

type symbolsConfig struct {
	Commands     map[string]arityConfig `yaml:"commands"`
	Environments map[string]arityConfig `yaml:"environments"`
}

// loadSymbols reads extra command and environment arities from a YAML file:
//
//	commands:
//	  InputFile: {required: 1}
//	environments:
//	  problem: {optional: 1, required: 2}
func loadSymbols(path string) (*latex.SymbolTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read symbols file: %w", err)
	}

	var config symbolsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unable to parse symbols file: %w", err)
	}

	table := latex.NewSymbolTable()
	for name, ar := range config.Commands {
		table.Register(name, latex.Arity{Optional: ar.Optional, Required: ar.Required})
	}

	for name, ar := range config.Environments {
		table.RegisterEnvironment(name, latex.Arity{Optional: ar.Optional, Required: ar.Required})
	}

	return table, nil
}

func printDiagnostics(diags []latex.Diagnostic) {
	for _, d := range diags {
		severity := color.YellowString("%v", d.Severity)
		if d.Severity == latex.Error {
			severity = color.RedString("%v", d.Severity)
		}

		fmt.Fprintf(os.Stderr, "%d:%d: %s: %s (%v)\n", d.Pos.Line, d.Pos.Column, severity, d.Message, d.Code)
	}
}
