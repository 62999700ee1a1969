package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/cssuseref/cmd/cssuseref"
	"github.com/arthur-debert/cssuseref/pkg/output"
)

func main() {
	rootCmd := cssuseref.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		renderer := output.NewRenderer(os.Stderr, output.FormatAuto)
		if renderErr := renderer.RenderError(err); renderErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
