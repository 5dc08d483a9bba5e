package main

import (
	"os"

	"github.com/treex/go-latex/cmd/treex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
