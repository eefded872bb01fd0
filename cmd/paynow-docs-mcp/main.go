// Package main provides the entry point for the paynow-docs-mcp CLI.
package main

import (
	"fmt"
	"os"

	"github.com/owlting/paynow-docs-mcp/cmd/paynow-docs-mcp/cmd"
	docserr "github.com/owlting/paynow-docs-mcp/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, docserr.FormatForCLI(err))
		os.Exit(1)
	}
}
