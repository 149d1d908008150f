package handlers

import (
	"context"
	"fmt"

	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/imamik/launcher/internal/catalog"
	"github.com/imamik/launcher/internal/config"
	"github.com/imamik/launcher/internal/platform/s3"
	"github.com/imamik/launcher/internal/util/retry"
)

// newBucketStore creates the object storage client for the catalog section
// (for testing injection).
var newBucketStore = func(c config.CatalogConfig) (catalog.BucketStore, error) {
	var opts []s3.Option
	if c.PathStyle {
		opts = append(opts, s3.WithPathStyle())
	}
	return s3.NewClient(c.Endpoint, c.Region, c.AccessKey, c.SecretKey, opts...)
}

// catalogSource builds the catalog source selected by the configuration.
func catalogSource(ctx context.Context, cfg *config.Config, timeouts *config.Timeouts) (catalog.Source, error) {
	logger := log.FromContext(ctx)

	retryOpts := []retry.Option{
		retry.WithMaxRetries(timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(timeouts.RetryInitialDelay),
		retry.WithNotify(func(attempt int, err error) {
			logger.Info("Retrying catalog fetch", "attempt", attempt, "error", err.Error())
		}),
	}

	switch cfg.Catalog.Source {
	case config.CatalogSourceDir:
		return catalog.DirSource{Path: cfg.Catalog.Path}, nil
	case config.CatalogSourceGit:
		return catalog.GitSource{URL: cfg.Catalog.URL, Ref: cfg.Catalog.Ref, Retry: retryOpts}, nil
	case config.CatalogSourceS3:
		store, err := newBucketStore(cfg.Catalog)
		if err != nil {
			return nil, err
		}
		return catalog.S3Source{
			Store:  store,
			Bucket: cfg.Catalog.Bucket,
			Prefix: cfg.Catalog.Prefix,
			Retry:  retryOpts,
		}, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}

// fetchCatalog loads the booster catalog within the catalog timeout.
func fetchCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	timeouts := config.LoadTimeouts()

	src, err := catalogSource(ctx, cfg, timeouts)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Catalog)
	defer cancel()

	cat, err := catalog.LoadFrom(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to load booster catalog: %w", err)
	}

	log.FromContext(ctx).V(1).Info("Loaded booster catalog", "source", string(cfg.Catalog.Source), "boosters", cat.Len())
	return cat, nil
}
