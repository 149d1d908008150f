package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/launcher/internal/platform/openshift"
)

// clusterView is the printed form of an OpenShift cluster.
type clusterView struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Type       string `json:"type,omitempty"`
	APIURL     string `json:"apiUrl"`
	ConsoleURL string `json:"consoleUrl,omitempty"`
}

func toClusterView(c openshift.Cluster) clusterView {
	return clusterView{ID: c.ID, Name: c.Name, Type: c.Type, APIURL: c.APIURL, ConsoleURL: c.ConsoleURL}
}

// ListClusters prints the clusters of the OpenShift cluster registry.
func ListClusters(_ context.Context, configPath string, format OutputFormat) error {
	if err := format.validate(); err != nil {
		return err
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	registry, err := loadClusterRegistry(cfg.OpenShift.ClustersFile)
	if err != nil {
		return err
	}

	clusters := registry.Clusters()
	views := make([]clusterView, 0, len(clusters))
	rows := make([][]string, 0, len(clusters))
	for _, c := range clusters {
		views = append(views, toClusterView(c))
		rows = append(rows, []string{c.ID, c.DisplayName(), c.Type, c.APIURL})
	}
	return printListing(format, views, []string{"ID", "NAME", "TYPE", "API URL"}, rows)
}
