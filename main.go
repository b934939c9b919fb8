// ABOUTME: Entry point for projecthub CLI
// ABOUTME: Command-line and terminal UI client for the ProjectHub API

package main

import (
	"fmt"
	"os"

	"github.com/markalston/projecthub-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
