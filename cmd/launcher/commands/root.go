// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// globalFlags are the persistent flags shared by all subcommands.
type globalFlags struct {
	configPath string
	verbose    bool
}

// Root returns the root command for the launcher CLI.
//
// The root command installs the logger into the command context before any
// subcommand runs, so handlers can retrieve it with log.FromContext.
func Root() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "launcher",
		Short:         "Create projects from the booster catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := zap.New(
				zap.UseDevMode(flags.verbose),
				zap.ConsoleEncoder(),
				zap.WriteTo(os.Stderr),
			)
			log.SetLogger(logger)
			cmd.SetContext(log.IntoContext(cmd.Context(), logger))
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to configuration file (default: launcher.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	// Core commands
	cmd.AddCommand(Launch(flags))
	cmd.AddCommand(Catalog(flags))
	cmd.AddCommand(Clusters(flags))

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
