package wizard

import (
	"github.com/charmbracelet/huh"

	"github.com/imamik/launcher/internal/catalog"
	"github.com/imamik/launcher/internal/platform/openshift"
)

// DeploymentTypeOptions contains the deployment type choices.
var DeploymentTypeOptions = []huh.Option[DeploymentType]{
	huh.NewOption("Continuous delivery (GitHub + OpenShift)", DeploymentCD),
	huh.NewOption("ZIP file", DeploymentZIP),
}

// MissionsToOptions converts missions to huh options keyed by ID.
func MissionsToOptions(missions []catalog.Mission) []huh.Option[string] {
	opts := make([]huh.Option[string], len(missions))
	for i, m := range missions {
		label := m.Name
		if label == "" {
			label = m.ID
		}
		if m.Description != "" {
			label += " - " + m.Description
		}
		opts[i] = huh.NewOption(label, m.ID)
	}
	return opts
}

// RuntimesToOptions converts runtimes to huh options keyed by ID.
func RuntimesToOptions(runtimes []catalog.Runtime, interactive bool) []huh.Option[string] {
	opts := make([]huh.Option[string], len(runtimes))
	for i, rt := range runtimes {
		opts[i] = huh.NewOption(Label(rt, interactive), rt.ID)
	}
	return opts
}

// ClustersToOptions converts clusters to huh options keyed by ID.
func ClustersToOptions(clusters []openshift.Cluster) []huh.Option[string] {
	opts := make([]huh.Option[string], len(clusters))
	for i, c := range clusters {
		label := c.DisplayName()
		if c.Type != "" {
			label += " (" + c.Type + ")"
		}
		opts[i] = huh.NewOption(label, c.ID)
	}
	return opts
}

func findRuntime(runtimes []catalog.Runtime, id string) (catalog.Runtime, bool) {
	for _, rt := range runtimes {
		if rt.ID == id {
			return rt, true
		}
	}
	return catalog.Runtime{}, false
}
