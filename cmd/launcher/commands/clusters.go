package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/launcher/cmd/launcher/handlers"
)

// Clusters returns the command listing the configured OpenShift clusters.
func Clusters(flags *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "clusters",
		Short: "List the configured OpenShift clusters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ListClusters(cmd.Context(), flags.configPath, handlers.OutputFormat(format))
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", string(handlers.FormatTable), "Output format: table, json or yaml")

	return cmd
}
