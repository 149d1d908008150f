// Package main is the entry point for the launcher CLI.
//
// launcher creates new projects from the booster catalog. A booster is
// picked by mission and runtime, filtered by what the target OpenShift
// cluster supports, and either downloaded as a zip archive or pushed to a
// new GitHub repository wired to the cluster's build webhooks.
//
// Commands: launch, catalog, clusters, version, completion.
//
// For detailed usage information, run:
//
//	launcher --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/launcher/cmd/launcher/commands"
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
