// Package main is the entry point for the presence CLI.
package main

import (
	"os"

	"github.com/watchfire-io/presence/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
