package wizard

import (
	"context"
	"fmt"

	"github.com/imamik/launcher/internal/catalog"
	"github.com/imamik/launcher/internal/platform/openshift"
)

// Wizard asks for the selections that are still missing.
type Wizard struct {
	Catalog  *catalog.Catalog
	Clusters openshift.ClusterRegistry
}

func (w *Wizard) runtimeStep() *RuntimeStep {
	return &RuntimeStep{Catalog: w.Catalog, Clusters: w.Clusters}
}

// Run completes sel interactively. Answers already present are kept, so
// flags given on the command line are not asked again. The context is used
// for cancellation support (e.g., Ctrl+C).
func (w *Wizard) Run(ctx context.Context, sel Selections) (*Selections, error) {
	result := sel

	if result.Mission == nil {
		if err := runMissionGroup(ctx, w.Catalog, &result); err != nil {
			return nil, fmt.Errorf("mission: %w", err)
		}
	}

	if result.DeploymentType == "" {
		if err := runDeploymentGroup(ctx, &result); err != nil {
			return nil, fmt.Errorf("deployment type: %w", err)
		}
	}

	// The cluster is only needed to deploy, and it narrows down the runtimes
	if result.DeploymentType == DeploymentCD && result.ClusterID == "" {
		if err := runClusterGroup(ctx, w, &result); err != nil {
			return nil, fmt.Errorf("cluster: %w", err)
		}
	}

	if result.Runtime == nil {
		if err := runRuntimeGroup(ctx, w, &result); err != nil {
			return nil, fmt.Errorf("runtime: %w", err)
		}
	}

	if result.ProjectName == "" {
		if err := runProjectGroup(ctx, &result); err != nil {
			return nil, fmt.Errorf("project: %w", err)
		}
	}

	if err := w.Validate(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Validate checks sel against the catalog and the cluster registry.
func (w *Wizard) Validate(sel *Selections) error {
	if err := sel.Validate(); err != nil {
		return err
	}
	if sel.DeploymentType == DeploymentCD {
		if _, ok := w.Clusters.FindClusterByID(sel.ClusterID); !ok {
			return newValidationError("cluster", "OpenShift cluster '%s' is not configured", sel.ClusterID)
		}
	}
	return w.runtimeStep().Validate(sel)
}

// Resolve looks up mission and runtime IDs in the catalog. Unknown IDs are
// kept as bare descriptors so that validation reports them by ID.
func (w *Wizard) Resolve(missionID, runtimeID string, sel *Selections) {
	if missionID != "" {
		m, ok := w.Catalog.Mission(missionID)
		if !ok {
			m = catalog.Mission{ID: missionID, Name: missionID}
		}
		sel.Mission = &m
	}
	if runtimeID != "" {
		rt, ok := w.Catalog.Runtime(runtimeID)
		if !ok {
			rt = catalog.Runtime{ID: runtimeID, Name: runtimeID}
		}
		sel.Runtime = &rt
	}
}
