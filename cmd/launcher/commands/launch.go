package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/launcher/cmd/launcher/handlers"
)

// Launch returns the command that creates a project from a booster.
func Launch(flags *globalFlags) *cobra.Command {
	opts := handlers.LaunchOptions{}

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Create a new project from a booster",
		Long: `Create a new project from the booster catalog.

The booster is chosen by mission and runtime. Only runtimes with a booster
for the selected mission that supports the target cluster are offered.

Deployment types:
  cd   Create a GitHub repository, push the project and register the
       OpenShift build webhooks (requires GITHUB_TOKEN and OPENSHIFT_TOKEN)
  zip  Write the project to a zip archive

Answers not given as flags are asked interactively when running in a
terminal.`,
		Example: `  # Interactive wizard
  launcher launch

  # Fully non-interactive
  launcher launch --mission rest-http --runtime vert.x --cluster starter --project demo

  # Download as zip archive
  launcher launch --mission rest-http --runtime vert.x --deployment-type zip --project demo`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.ConfigPath = flags.configPath
			return handlers.Launch(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Mission, "mission", "", "Mission ID (e.g. rest-http)")
	cmd.Flags().StringVar(&opts.Runtime, "runtime", "", "Runtime ID (e.g. vert.x)")
	cmd.Flags().StringVarP(&opts.DeploymentType, "deployment-type", "d", "", "Deployment type: cd or zip")
	cmd.Flags().StringVar(&opts.Cluster, "cluster", "", "OpenShift cluster ID for the cd deployment type")
	cmd.Flags().StringVarP(&opts.Project, "project", "p", "", "Project name")
	cmd.Flags().StringVar(&opts.Repository, "repository", "", "GitHub repository name (default: project name)")
	cmd.Flags().StringVar(&opts.Description, "description", "", "GitHub repository description")
	cmd.Flags().StringVar(&opts.ProjectDir, "project-dir", "", "Directory the booster is checked out into (default: temporary directory)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Zip archive path for the zip deployment type (default: <project>.zip)")
	cmd.Flags().BoolVar(&opts.NoTUI, "no-tui", false, "Print plain progress instead of the interactive view")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write provisioning metrics in Prometheus text format to this file")

	return cmd
}
