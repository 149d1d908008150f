package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/imamik/launcher/internal/catalog"
)

// CatalogQuery narrows a catalog listing. Empty fields match everything.
type CatalogQuery struct {
	Mission     string
	Runtime     string
	ClusterType string
}

func (q CatalogQuery) filter() catalog.Filter {
	f := catalog.All()
	if q.Mission != "" {
		f = f.And(catalog.Missions(catalog.Mission{ID: q.Mission}))
	}
	if q.Runtime != "" {
		f = f.And(catalog.Runtimes(catalog.Runtime{ID: q.Runtime}))
	}
	if q.ClusterType != "" {
		f = f.And(catalog.RunsOn(q.ClusterType))
	}
	return f
}

func queryCatalog(ctx context.Context, configPath string) (*catalog.Catalog, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return loadCatalog(ctx, cfg)
}

// ListMissions prints the missions of the boosters matching query.
func ListMissions(ctx context.Context, configPath string, query CatalogQuery, format OutputFormat) error {
	if err := format.validate(); err != nil {
		return err
	}
	cat, err := queryCatalog(ctx, configPath)
	if err != nil {
		return err
	}

	missions := cat.Missions(query.filter())
	if missions == nil {
		missions = []catalog.Mission{}
	}
	rows := make([][]string, 0, len(missions))
	for _, m := range missions {
		rows = append(rows, []string{m.ID, m.Name, m.Description})
	}
	return printListing(format, missions, []string{"ID", "NAME", "DESCRIPTION"}, rows)
}

// ListRuntimes prints the runtimes of the boosters matching query.
func ListRuntimes(ctx context.Context, configPath string, query CatalogQuery, format OutputFormat) error {
	if err := format.validate(); err != nil {
		return err
	}
	cat, err := queryCatalog(ctx, configPath)
	if err != nil {
		return err
	}

	runtimes := cat.Runtimes(query.filter())
	if runtimes == nil {
		runtimes = []catalog.Runtime{}
	}
	rows := make([][]string, 0, len(runtimes))
	for _, r := range runtimes {
		rows = append(rows, []string{r.ID, r.Name, r.Description})
	}
	return printListing(format, runtimes, []string{"ID", "NAME", "DESCRIPTION"}, rows)
}

// ListBoosters prints the boosters matching query.
func ListBoosters(ctx context.Context, configPath string, query CatalogQuery, format OutputFormat) error {
	if err := format.validate(); err != nil {
		return err
	}
	cat, err := queryCatalog(ctx, configPath)
	if err != nil {
		return err
	}

	boosters := cat.Boosters(query.filter())
	if boosters == nil {
		boosters = []*catalog.Booster{}
	}
	rows := make([][]string, 0, len(boosters))
	for _, b := range boosters {
		runsOn := strings.Join(b.RunsOn(), ",")
		if runsOn == "" {
			runsOn = "*"
		}
		rows = append(rows, []string{b.Name, b.Mission.ID, b.Runtime.ID, b.Version, runsOn})
	}
	return printListing(format, boosters, []string{"NAME", "MISSION", "RUNTIME", "VERSION", "RUNS ON"}, rows)
}

// PublishCatalog uploads the catalog in dir to object storage. Empty bucket
// and prefix fall back to the catalog section of the configuration.
func PublishCatalog(ctx context.Context, configPath, dir, bucket, prefix string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if bucket == "" {
		bucket = cfg.Catalog.Bucket
	}
	if prefix == "" {
		prefix = cfg.Catalog.Prefix
	}
	if bucket == "" {
		return errors.New("bucket is required (use --bucket or catalog.bucket)")
	}

	fs, err := catalog.DirSource{Path: dir}.Open(ctx)
	if err != nil {
		return err
	}

	store, err := newBucketStore(cfg.Catalog)
	if err != nil {
		return err
	}

	result, err := catalog.Publish(ctx, fs, store, bucket, prefix)
	if err != nil {
		return fmt.Errorf("failed to publish catalog: %w", err)
	}

	_, err = fmt.Fprint(stdout, renderPublishResult(bucket, prefix, result))
	return err
}
