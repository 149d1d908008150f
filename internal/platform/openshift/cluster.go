package openshift

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultClusterID identifies the cluster built from environment variables
// when no registry file exists.
const DefaultClusterID = "default"

// Environment variables describing the default cluster.
const (
	EnvAPIURL     = "OPENSHIFT_API_URL"
	EnvConsoleURL = "OPENSHIFT_CONSOLE_URL"
)

// Cluster is an OpenShift cluster projects can be deployed to.
type Cluster struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name,omitempty"`
	Type       string `yaml:"type,omitempty"`
	APIURL     string `yaml:"apiUrl"`
	ConsoleURL string `yaml:"consoleUrl,omitempty"`
	// InsecureSkipTLSVerify disables API server certificate checks.
	InsecureSkipTLSVerify bool `yaml:"insecureSkipTlsVerify,omitempty"`
}

// DisplayName returns the cluster name, or its ID when unnamed.
func (c Cluster) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// ClusterRegistry lists the known clusters.
type ClusterRegistry interface {
	FindClusterByID(id string) (Cluster, bool)
	Clusters() []Cluster
}

type registryFile struct {
	Clusters []Cluster `yaml:"clusters"`
}

type staticRegistry struct {
	clusters []Cluster
}

// NewClusterRegistry creates a registry from clusters, sorted by ID.
func NewClusterRegistry(clusters ...Cluster) ClusterRegistry {
	sorted := append([]Cluster(nil), clusters...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return &staticRegistry{clusters: sorted}
}

func (r *staticRegistry) FindClusterByID(id string) (Cluster, bool) {
	for _, c := range r.clusters {
		if c.ID == id {
			return c, true
		}
	}
	return Cluster{}, false
}

func (r *staticRegistry) Clusters() []Cluster {
	return append([]Cluster(nil), r.clusters...)
}

// LoadClusterRegistry reads the registry at path. When path is empty or the
// file does not exist, the registry holds the default cluster described by
// OPENSHIFT_API_URL and OPENSHIFT_CONSOLE_URL, or nothing if those are unset.
func LoadClusterRegistry(path string) (ClusterRegistry, error) {
	if path == "" {
		return defaultRegistry(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultRegistry(), nil
		}
		return nil, fmt.Errorf("failed to read cluster registry %s: %w", path, err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse cluster registry %s: %w", path, err)
	}

	seen := make(map[string]bool, len(file.Clusters))
	for i, c := range file.Clusters {
		if c.ID == "" {
			return nil, fmt.Errorf("cluster registry %s: cluster %d has no id", path, i)
		}
		if c.APIURL == "" {
			return nil, fmt.Errorf("cluster registry %s: cluster %s has no apiUrl", path, c.ID)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("cluster registry %s: duplicate cluster id %s", path, c.ID)
		}
		seen[c.ID] = true
	}

	return NewClusterRegistry(file.Clusters...), nil
}

func defaultRegistry() ClusterRegistry {
	apiURL := os.Getenv(EnvAPIURL)
	if apiURL == "" {
		return NewClusterRegistry()
	}
	return NewClusterRegistry(Cluster{
		ID:         DefaultClusterID,
		Name:       "OpenShift",
		APIURL:     apiURL,
		ConsoleURL: os.Getenv(EnvConsoleURL),
	})
}
