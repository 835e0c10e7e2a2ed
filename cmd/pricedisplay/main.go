// Package main is the entry point for the pricedisplay dashboard.
package main

import (
	"fmt"
	"os"

	"github.com/tOgg1/pricedisplay/internal/dashboard"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := dashboard.Execute(fmt.Sprintf("%s (%s, %s)", version, commit, date)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(dashboard.ExitCode(err))
	}
}
