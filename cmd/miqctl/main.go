// Package main is the entry point for the miqctl CLI.
//
// miqctl is a command-line tool for converging infrastructure provider
// records on a ManageIQ server. It compares a desired-state YAML file
// against the live provider record, writes only the differences, and
// waits for the server to validate the new credentials.
//
// Commands: init, apply, delete, attributes.
//
// For detailed usage information, run:
//
//	miqctl --help
package main

import (
	"fmt"
	"os"

	"github.com/miqops/miqctl/cmd/miqctl/commands"
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
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
