// Package main is the entry point for the rds-cost CLI.
package main

import (
	"os"

	"rds-cost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
