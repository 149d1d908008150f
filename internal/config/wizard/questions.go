package wizard

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/imamik/launcher/internal/catalog"
)

// runMissionGroup prompts for the mission.
func runMissionGroup(ctx context.Context, cat *catalog.Catalog, sel *Selections) error {
	missions := cat.Missions(catalog.All())
	if len(missions) == 0 {
		return errors.New("the booster catalog has no missions")
	}

	id := missions[0].ID
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Mission").
				Description("What should your application do?").
				Options(MissionsToOptions(missions)...).
				Value(&id),
		).Title("Mission"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	m, _ := cat.Mission(id)
	sel.Mission = &m
	return nil
}

// runDeploymentGroup prompts for the deployment type.
func runDeploymentGroup(ctx context.Context, sel *Selections) error {
	sel.DeploymentType = DeploymentCD // default

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[DeploymentType]().
				Title("Deployment Type").
				Description("Push to GitHub and build on OpenShift, or download a ZIP").
				Options(DeploymentTypeOptions...).
				Value(&sel.DeploymentType),
		).Title("Deployment"),
	).RunWithContext(ctx)
}

// runClusterGroup prompts for the OpenShift cluster. A single cluster is
// chosen without asking.
func runClusterGroup(ctx context.Context, w *Wizard, sel *Selections) error {
	clusters := w.Clusters.Clusters()
	switch len(clusters) {
	case 0:
		return errors.New("no OpenShift cluster is configured")
	case 1:
		sel.ClusterID = clusters[0].ID
		return nil
	}

	sel.ClusterID = clusters[0].ID
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("OpenShift Cluster").
				Description("Cluster the project is built and deployed on").
				Options(ClustersToOptions(clusters)...).
				Value(&sel.ClusterID),
		).Title("Cluster"),
	).RunWithContext(ctx)
}

// runRuntimeGroup prompts for the runtime, offering only the runtimes the
// RuntimeStep accepts for the current selections.
func runRuntimeGroup(ctx context.Context, w *Wizard, sel *Selections) error {
	step := w.runtimeStep()
	choices := step.Choices(sel)
	if len(choices) == 0 {
		return newValidationError("runtime", "No runtime available for mission '%s'", sel.Mission)
	}

	id := step.Default(sel).ID
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Runtime").
				Description("Choose the runtime for your mission").
				Options(RuntimesToOptions(choices, true)...).
				Value(&id).
				Validate(func(v string) error {
					rt, _ := findRuntime(choices, v)
					candidate := *sel
					candidate.Runtime = &rt
					return step.Validate(&candidate)
				}),
		).Title("Runtime"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	rt, _ := findRuntime(choices, id)
	step.Next(sel, rt)
	return nil
}

// runProjectGroup prompts for the project name and repository details.
func runProjectGroup(ctx context.Context, sel *Selections) error {
	fields := []huh.Field{
		huh.NewInput().
			Title("Project Name").
			Description("1-63 lowercase alphanumeric characters or hyphens").
			Placeholder("my-booster").
			Value(&sel.ProjectName).
			Validate(validateProjectName),
	}
	if sel.DeploymentType == DeploymentCD {
		fields = append(fields,
			huh.NewInput().
				Title("GitHub Repository (Optional)").
				Description("Leave empty to use the project name").
				Value(&sel.RepositoryName).
				Validate(validateOptionalName),
			huh.NewInput().
				Title("Repository Description (Optional)").
				Value(&sel.RepositoryDescription),
		)
	}

	return huh.NewForm(huh.NewGroup(fields...).Title("Project")).RunWithContext(ctx)
}

func validateOptionalName(name string) error {
	if name == "" {
		return nil
	}
	return validateProjectName(name)
}
