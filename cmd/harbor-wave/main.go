// Package main is the entry point for the harbor-wave CLI.
//
// harbor-wave spawns numbered fleets of DigitalOcean droplets from a custom
// image, publishes their DNS names, and tears them down again.
//
// Commands: spawn, destroy, list, set, get, print-config, check-config, touch.
//
// For detailed usage information, run:
//
//	harbor-wave --help
package main

import (
	"os"

	"github.com/harborwave/harbor-wave/cmd/harbor-wave/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	os.Exit(commands.Execute())
}
