// Package main is the entry point for the presenced daemon.
package main

import (
	"os"

	"github.com/watchfire-io/presence/internal/daemon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
