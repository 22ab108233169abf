// Package main provides the unitheme CLI entry point.
// unitheme applies color themes across desktop toolkits as one
// coordinated, reversible operation.
package main

import (
	"fmt"
	"os"

	"github.com/phlthy88/unified-theming/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
