// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/imamik/launcher/internal/catalog"
	"github.com/imamik/launcher/internal/config"
	"github.com/imamik/launcher/internal/config/wizard"
	"github.com/imamik/launcher/internal/platform/github"
	"github.com/imamik/launcher/internal/platform/openshift"
	"github.com/imamik/launcher/internal/provisioning"
	"github.com/imamik/launcher/internal/ui/tui"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfig loads and validates the configuration file.
	loadConfig = config.Load

	// loadCatalog fetches the booster catalog described by the configuration.
	loadCatalog = fetchCatalog

	// loadClusterRegistry reads the OpenShift cluster registry.
	loadClusterRegistry = openshift.LoadClusterRegistry

	// newGitHubFactory creates the GitHub service factory for the configuration.
	newGitHubFactory = func(cfg *config.Config) github.Factory {
		var opts []github.Option
		if cfg.GitHub.APIURL != "" {
			opts = append(opts, github.WithBaseURL(cfg.GitHub.APIURL))
		}
		return github.NewFactory(opts...)
	}

	// newOpenShiftFactory creates the OpenShift service factory.
	newOpenShiftFactory = openshift.NewFactory

	// checkoutBooster copies a booster into a project directory.
	checkoutBooster = catalog.Checkout

	// runWizard asks for the missing selections.
	runWizard = func(ctx context.Context, w *wizard.Wizard, sel wizard.Selections) (*wizard.Selections, error) {
		return w.Run(ctx, sel)
	}

	// runProvisionTUI shows provisioning progress in the interactive view.
	runProvisionTUI = tui.RunProvisionTUI

	// isInteractiveTTY reports whether stdout is a terminal.
	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	// stdout receives command output (for testing injection).
	stdout io.Writer = os.Stdout
)

// LaunchOptions are the answers given on the command line.
type LaunchOptions struct {
	ConfigPath     string
	Mission        string
	Runtime        string
	DeploymentType string
	Cluster        string
	Project        string
	Repository     string
	Description    string
	ProjectDir     string
	Output         string
	NoTUI          bool
	MetricsFile    string
}

// Launch creates a project from a booster.
//
// The workflow:
//  1. Loads the configuration, the booster catalog and the cluster registry
//  2. Completes the selections with the wizard when running in a terminal
//  3. Validates that a booster exists for the mission and runtime
//  4. Checks the booster out into the project directory
//  5. Writes a zip archive, or creates the GitHub repository, pushes the
//     project and registers the OpenShift build webhooks
func Launch(ctx context.Context, opts LaunchOptions) error {
	logger := log.FromContext(ctx)

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}

	clusters, err := loadClusterRegistry(cfg.OpenShift.ClustersFile)
	if err != nil {
		return err
	}

	w := &wizard.Wizard{Catalog: cat, Clusters: clusters}
	sel, err := selectBooster(ctx, w, cfg, opts)
	if err != nil {
		return err
	}

	if sel.DeploymentType == wizard.DeploymentCD {
		// Fail before the checkout when the tokens are missing
		if err := cfg.ValidateProvisioning(); err != nil {
			return err
		}
	}

	booster, err := (&wizard.RuntimeStep{Catalog: cat, Clusters: clusters}).Booster(sel)
	if err != nil {
		return err
	}

	dir, cleanup, err := projectDir(opts.ProjectDir)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("Checking out booster", "booster", booster.String(), "dir", dir)
	if err := checkoutBooster(ctx, booster, dir); err != nil {
		return fmt.Errorf("failed to check out booster %s: %w", booster, err)
	}

	if sel.DeploymentType == wizard.DeploymentZIP {
		return launchZip(sel, dir, opts.Output)
	}
	return launchCD(ctx, cfg, clusters, sel, dir, opts)
}

// selectBooster completes and validates the selections. Missing answers are
// asked for in a terminal. Otherwise the deployment type defaults to cd and
// the cluster to the only configured one.
func selectBooster(ctx context.Context, w *wizard.Wizard, cfg *config.Config, opts LaunchOptions) (*wizard.Selections, error) {
	sel := wizard.Selections{
		DeploymentType:        wizard.DeploymentType(opts.DeploymentType),
		ClusterID:             opts.Cluster,
		ProjectName:           opts.Project,
		RepositoryName:        opts.Repository,
		RepositoryDescription: opts.Description,
	}
	if sel.ClusterID == "" {
		sel.ClusterID = cfg.OpenShift.Cluster
	}
	w.Resolve(opts.Mission, opts.Runtime, &sel)

	if !isComplete(&sel) && isInteractiveTTY() {
		return runWizard(ctx, w, sel)
	}

	if sel.DeploymentType == "" {
		sel.DeploymentType = wizard.DeploymentCD
	}
	if sel.DeploymentType == wizard.DeploymentCD && sel.ClusterID == "" {
		if all := w.Clusters.Clusters(); len(all) == 1 {
			sel.ClusterID = all[0].ID
		}
	}

	if err := w.Validate(&sel); err != nil {
		return nil, err
	}
	return &sel, nil
}

func isComplete(sel *wizard.Selections) bool {
	if sel.Mission == nil || sel.Runtime == nil || sel.DeploymentType == "" || sel.ProjectName == "" {
		return false
	}
	return sel.DeploymentType != wizard.DeploymentCD || sel.ClusterID != ""
}

// projectDir returns dir, or a new temporary directory removed by cleanup.
func projectDir(dir string) (string, func(), error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", nil, fmt.Errorf("failed to create project directory: %w", err)
		}
		return dir, func() {}, nil
	}

	tmp, err := os.MkdirTemp("", "launcher-project-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temporary directory: %w", err)
	}
	return tmp, func() { _ = os.RemoveAll(tmp) }, nil
}

func launchZip(sel *wizard.Selections, dir, output string) error {
	if output == "" {
		output = sel.ProjectName + ".zip"
	}
	if err := writeZip(dir, output, sel.ProjectName); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	_, err := fmt.Fprint(stdout, renderZipResult(sel, output))
	return err
}

func launchCD(ctx context.Context, cfg *config.Config, clusters openshift.ClusterRegistry, sel *wizard.Selections, dir string, opts LaunchOptions) error {
	logger := log.FromContext(ctx)

	projectile := sel.Projectile(
		github.Identity{Token: cfg.GitHub.Token},
		openshift.Identity{Token: cfg.OpenShift.Token},
		dir,
	)
	req := provisioning.NewRequest(projectile)

	pipeline := provisioning.NewGitHubPipeline(provisioning.Dependencies{
		GitHub:    newGitHubFactory(cfg),
		OpenShift: newOpenShiftFactory(),
		Clusters:  clusters,
	})

	run := func(ctx context.Context, status provisioning.StatusEmitter) error {
		return pipeline.Run(provisioning.NewContext(ctx, status), req)
	}

	title := "launcher: " + projectile.RepositoryName()
	var runErr error
	if isInteractiveTTY() && !opts.NoTUI {
		// Log lines would tear the view, the TUI shows the progress instead
		runErr = runProvisionTUI(log.IntoContext(ctx, logr.Discard()), title, pipeline.Types(), run)
	} else {
		recorder := &provisioning.RecordingEmitter{}
		runErr = run(ctx, provisioning.MultiEmitter{provisioning.LogEmitter{Logger: logger}, recorder})
		if _, err := fmt.Fprint(stdout, tui.RenderSummary(title, pipeline.Types(), recorder.Events(), runErr)); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}

	if opts.MetricsFile != "" {
		if err := provisioning.WriteMetrics(opts.MetricsFile); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}

	if runErr != nil {
		return runErr
	}

	_, err := fmt.Fprint(stdout, renderLaunchResult(sel, req))
	return err
}
