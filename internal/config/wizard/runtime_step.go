package wizard

import (
	"github.com/imamik/launcher/internal/catalog"
	"github.com/imamik/launcher/internal/platform/openshift"
)

// RuntimeStep chooses the runtime for the selected mission.
type RuntimeStep struct {
	Catalog  *catalog.Catalog
	Clusters openshift.ClusterRegistry
}

// Choices returns the runtimes with at least one booster for the selected
// mission. For continuous delivery to a cluster with a known type, boosters
// that cannot run on that type are ignored.
func (s *RuntimeStep) Choices(sel *Selections) []catalog.Runtime {
	filter := catalog.All()
	if sel.DeploymentType == DeploymentCD && s.Clusters != nil {
		if cluster, ok := s.Clusters.FindClusterByID(sel.ClusterID); ok && cluster.Type != "" {
			filter = catalog.RunsOn(cluster.Type)
		}
	}
	if sel.Mission != nil {
		filter = filter.And(catalog.Missions(*sel.Mission))
	}
	return s.Catalog.Runtimes(filter)
}

// Default returns the first choice, or nil when there is none.
func (s *RuntimeStep) Default(sel *Selections) *catalog.Runtime {
	choices := s.Choices(sel)
	if len(choices) == 0 {
		return nil
	}
	return &choices[0]
}

// Validate fails when no booster exists for the selected mission and runtime.
func (s *RuntimeStep) Validate(sel *Selections) error {
	_, err := s.Booster(sel)
	return err
}

// Booster returns the booster for the selected mission and runtime.
func (s *RuntimeStep) Booster(sel *Selections) (*catalog.Booster, error) {
	if sel.Runtime == nil {
		return nil, &ValidationError{Field: "runtime", Message: errRuntimeRequired.Error()}
	}

	var mission catalog.Mission
	if sel.Mission != nil {
		mission = *sel.Mission
	}

	b, ok := s.Catalog.Booster(catalog.Missions(mission).And(catalog.Runtimes(*sel.Runtime)))
	if !ok {
		return nil, newValidationError("runtime",
			"No booster found for mission '%s' and runtime '%s'", mission, *sel.Runtime)
	}
	return b, nil
}

// Next records the chosen runtime.
func (s *RuntimeStep) Next(sel *Selections, rt catalog.Runtime) {
	sel.Runtime = &rt
}

// Label returns the runtime name for interactive terminals and its ID
// otherwise.
func Label(rt catalog.Runtime, interactive bool) string {
	if interactive && rt.Name != "" {
		return rt.Name
	}
	return rt.ID
}
