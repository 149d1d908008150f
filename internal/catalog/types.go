package catalog

import (
	"fmt"
	"strings"
)

// Mission describes the purpose of a booster (e.g. "rest-http").
type Mission struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// String returns the mission ID.
func (m Mission) String() string {
	return m.ID
}

// Equal reports whether both missions have the same ID.
func (m Mission) Equal(other Mission) bool {
	return m.ID == other.ID
}

// Runtime describes the language or platform a booster targets (e.g. "vert.x").
type Runtime struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// String returns the runtime ID.
func (r Runtime) String() string {
	return r.ID
}

// Equal reports whether both runtimes have the same ID.
func (r Runtime) Equal(other Runtime) bool {
	return r.ID == other.ID
}

// BoosterSource locates the content of a booster.
type BoosterSource struct {
	GitRepo string `json:"gitRepo,omitempty"`
	GitRef  string `json:"gitRef,omitempty"`
	// Path is an optional subdirectory of the repository holding the project.
	Path string `json:"path,omitempty"`
}

// Booster is a starter project for one mission and runtime combination.
type Booster struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Mission     Mission        `json:"mission"`
	Runtime     Runtime        `json:"runtime"`
	Version     string         `json:"version,omitempty"`
	Source      BoosterSource  `json:"source"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// MetadataRunsOn is the metadata key listing the cluster types a booster supports.
const MetadataRunsOn = "runsOn"

// RunsOn returns the cluster types declared in the booster metadata.
// Both a single string and a list of strings are accepted.
func (b *Booster) RunsOn() []string {
	raw, ok := b.Metadata[MetadataRunsOn]
	if !ok || raw == nil {
		return nil
	}

	switch v := raw.(type) {
	case string:
		return splitNonEmpty(v)
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}

// String returns "mission/runtime[/version]".
func (b *Booster) String() string {
	s := b.Mission.ID + "/" + b.Runtime.ID
	if b.Version != "" {
		s += "/" + b.Version
	}
	return s
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
