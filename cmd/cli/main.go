// Package main is the entry point for the tax-dashboard CLI.
package main

import (
	"os"

	"tax-dashboard/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
