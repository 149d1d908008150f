package config

import (
	"errors"
	"fmt"
	"net/url"
)

// CatalogSource selects where the booster catalog is read from.
type CatalogSource string

// Catalog sources.
const (
	CatalogSourceGit CatalogSource = "git"
	CatalogSourceDir CatalogSource = "dir"
	CatalogSourceS3  CatalogSource = "s3"
)

// ValidCatalogSources returns all supported catalog sources.
func ValidCatalogSources() []CatalogSource {
	return []CatalogSource{CatalogSourceGit, CatalogSourceDir, CatalogSourceS3}
}

// IsValid reports whether s is a supported catalog source.
func (s CatalogSource) IsValid() bool {
	for _, v := range ValidCatalogSources() {
		if s == v {
			return true
		}
	}
	return false
}

// Defaults for the public booster catalog.
const (
	DefaultCatalogURL = "https://github.com/fabric8-launcher/launcher-booster-catalog.git"
	DefaultCatalogRef = "master"
)

// Config is the launcher configuration.
type Config struct {
	GitHub    GitHubConfig    `mapstructure:"github" yaml:"github"`
	OpenShift OpenShiftConfig `mapstructure:"openshift" yaml:"openshift"`
	Catalog   CatalogConfig   `mapstructure:"catalog" yaml:"catalog"`
}

// GitHubConfig holds GitHub API settings.
type GitHubConfig struct {
	Token string `mapstructure:"token" yaml:"token,omitempty"`
	// APIURL points at a GitHub Enterprise API. Empty means github.com.
	APIURL string `mapstructure:"api_url" yaml:"api_url,omitempty"`
}

// OpenShiftConfig holds OpenShift settings.
type OpenShiftConfig struct {
	Token        string `mapstructure:"token" yaml:"token,omitempty"`
	ClustersFile string `mapstructure:"clusters_file" yaml:"clusters_file,omitempty"`
	// Cluster is the cluster ID used when none is selected.
	Cluster string `mapstructure:"cluster" yaml:"cluster,omitempty"`
}

// CatalogConfig locates the booster catalog.
type CatalogConfig struct {
	Source CatalogSource `mapstructure:"source" yaml:"source"`

	// Path is the catalog directory for the dir source.
	Path string `mapstructure:"path" yaml:"path,omitempty"`

	// URL and Ref locate the git repository for the git source.
	URL string `mapstructure:"url" yaml:"url,omitempty"`
	Ref string `mapstructure:"ref" yaml:"ref,omitempty"`

	// Object storage settings for the s3 source.
	Bucket    string `mapstructure:"bucket" yaml:"bucket,omitempty"`
	Prefix    string `mapstructure:"prefix" yaml:"prefix,omitempty"`
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`
	Region    string `mapstructure:"region" yaml:"region,omitempty"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key,omitempty"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key,omitempty"`
	PathStyle bool   `mapstructure:"path_style" yaml:"path_style,omitempty"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Catalog.Source == "" {
		c.Catalog.Source = CatalogSourceGit
	}
	if c.Catalog.Source == CatalogSourceGit {
		if c.Catalog.URL == "" {
			c.Catalog.URL = DefaultCatalogURL
		}
		if c.Catalog.Ref == "" {
			c.Catalog.Ref = DefaultCatalogRef
		}
	}
	if c.Catalog.Source == CatalogSourceS3 && c.Catalog.Region == "" {
		c.Catalog.Region = "us-east-1"
	}
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	if c.GitHub.APIURL != "" {
		if u, err := url.Parse(c.GitHub.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, errors.New("github.api_url must be an absolute URL"))
		}
	}

	switch c.Catalog.Source {
	case CatalogSourceDir:
		if c.Catalog.Path == "" {
			errs = append(errs, errors.New("catalog.path is required for the dir source"))
		}
	case CatalogSourceGit:
		if c.Catalog.URL == "" {
			errs = append(errs, errors.New("catalog.url is required for the git source"))
		}
	case CatalogSourceS3:
		if c.Catalog.Bucket == "" {
			errs = append(errs, errors.New("catalog.bucket is required for the s3 source"))
		}
		if (c.Catalog.AccessKey == "") != (c.Catalog.SecretKey == "") {
			errs = append(errs, errors.New("catalog.access_key and catalog.secret_key must be set together"))
		}
	default:
		errs = append(errs, fmt.Errorf("catalog.source must be one of: %v", ValidCatalogSources()))
	}

	return errors.Join(errs...)
}

// ValidateProvisioning checks the credentials needed to provision to GitHub
// and OpenShift.
func (c *Config) ValidateProvisioning() error {
	var errs []error
	if c.GitHub.Token == "" {
		errs = append(errs, fmt.Errorf("GitHub token is required (set %s)", EnvGitHubToken))
	}
	if c.OpenShift.Token == "" {
		errs = append(errs, fmt.Errorf("OpenShift token is required (set %s)", EnvOpenShiftToken))
	}
	return errors.Join(errs...)
}
