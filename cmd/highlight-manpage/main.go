package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/highlight/cmd/highlight"
	"github.com/arthur-debert/highlight/internal/version"
)

func main() {
	rootCmd := highlight.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "HIGHLIGHT",
		Section: "1",
		Source:  "highlight " + version.Version,
		Manual:  "highlight manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
