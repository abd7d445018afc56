// Package main is the entry point for the iapssh CLI.
//
// iapssh runs a command on a Compute Engine instance from a CI job. It writes
// a temporary SSH key, makes sure the Cloud SDK is available and connects
// with `gcloud compute ssh` through Identity-Aware Proxy.
//
// Commands: run, cleanup, version, completion.
//
// For detailed usage information, run:
//
//	iapssh --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/iapssh/cmd/iapssh/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "iapssh failed with: %v\n", err)
		os.Exit(1)
	}
}
