// Package main provides msh, an interactive file-management shell with undo.
package main

import (
	"fmt"
	"os"
)

// Version is injected at build time via -ldflags
var Version = "dev"

func main() {
	rootCmd := newRootCommand(os.Stdin, os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
