// Command wfi lexes, parses, and evaluates WHILE and FUN programs,
// wired into a single cobra binary.
package main

import (
	"os"

	"github.com/wfi-lang/wfi/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
