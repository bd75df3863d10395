package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/highlight/cmd/highlight"
	"github.com/arthur-debert/highlight/pkg/ui/styles"
)

func main() {
	rootCmd := highlight.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !highlight.IsReported(err) {
			errorStyle := styles.GetStyle("Error")
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			fmt.Fprintln(os.Stderr)
			_ = rootCmd.Usage()
		}
		os.Exit(1)
	}
}
