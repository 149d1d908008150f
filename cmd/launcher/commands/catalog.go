package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/launcher/cmd/launcher/handlers"
)

// Catalog returns the command group for browsing and publishing the booster
// catalog.
func Catalog(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse and publish the booster catalog",
	}

	cmd.AddCommand(catalogMissions(flags))
	cmd.AddCommand(catalogRuntimes(flags))
	cmd.AddCommand(catalogBoosters(flags))
	cmd.AddCommand(catalogPublish(flags))

	return cmd
}

func bindQueryFlags(cmd *cobra.Command, query *handlers.CatalogQuery, format *string) {
	cmd.Flags().StringVar(&query.Mission, "mission", "", "Only boosters for this mission ID")
	cmd.Flags().StringVar(&query.Runtime, "runtime", "", "Only boosters for this runtime ID")
	cmd.Flags().StringVar(&query.ClusterType, "cluster-type", "", "Only boosters that run on this cluster type")
	cmd.Flags().StringVarP(format, "output", "o", string(handlers.FormatTable), "Output format: table, json or yaml")
}

func catalogMissions(flags *globalFlags) *cobra.Command {
	var query handlers.CatalogQuery
	var format string

	cmd := &cobra.Command{
		Use:   "missions",
		Short: "List the missions of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ListMissions(cmd.Context(), flags.configPath, query, handlers.OutputFormat(format))
		},
	}
	bindQueryFlags(cmd, &query, &format)
	return cmd
}

func catalogRuntimes(flags *globalFlags) *cobra.Command {
	var query handlers.CatalogQuery
	var format string

	cmd := &cobra.Command{
		Use:   "runtimes",
		Short: "List the runtimes of the catalog",
		Example: `  # Runtimes offering the rest-http mission on starter clusters
  launcher catalog runtimes --mission rest-http --cluster-type starter`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ListRuntimes(cmd.Context(), flags.configPath, query, handlers.OutputFormat(format))
		},
	}
	bindQueryFlags(cmd, &query, &format)
	return cmd
}

func catalogBoosters(flags *globalFlags) *cobra.Command {
	var query handlers.CatalogQuery
	var format string

	cmd := &cobra.Command{
		Use:   "boosters",
		Short: "List the boosters of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ListBoosters(cmd.Context(), flags.configPath, query, handlers.OutputFormat(format))
		},
	}
	bindQueryFlags(cmd, &query, &format)
	return cmd
}

func catalogPublish(flags *globalFlags) *cobra.Command {
	var bucket, prefix string

	cmd := &cobra.Command{
		Use:   "publish <dir>",
		Short: "Upload a local catalog to object storage",
		Long: `Upload the catalog in <dir> to an S3-compatible bucket so it can be used
with the s3 catalog source. The catalog is validated before anything is
uploaded. Objects under the prefix that are not part of the catalog are
removed.

The endpoint, region and credentials are taken from the catalog section of
the configuration file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.PublishCatalog(cmd.Context(), flags.configPath, args[0], bucket, prefix)
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Target bucket (default: catalog.bucket from the configuration)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default: catalog.prefix from the configuration)")

	return cmd
}
