package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFilename is the configuration file looked up by FindConfigFile.
const DefaultConfigFilename = "launcher.yaml"

// Environment variables overriding the configuration file.
const (
	EnvGitHubToken       = "GITHUB_TOKEN"
	EnvGitHubAPIURL      = "GITHUB_API_URL"
	EnvOpenShiftToken    = "OPENSHIFT_TOKEN"
	EnvOpenShiftClusters = "OPENSHIFT_CLUSTERS_FILE"
	EnvOpenShiftCluster  = "OPENSHIFT_CLUSTER"
	EnvCatalogSource     = "LAUNCHER_CATALOG_SOURCE"
	EnvCatalogPath       = "LAUNCHER_CATALOG_PATH"
	EnvCatalogURL        = "LAUNCHER_CATALOG_URL"
	EnvCatalogRef        = "LAUNCHER_CATALOG_REF"
	EnvCatalogBucket     = "LAUNCHER_CATALOG_BUCKET"
	EnvCatalogPrefix     = "LAUNCHER_CATALOG_PREFIX"
	EnvCatalogEndpoint   = "LAUNCHER_CATALOG_ENDPOINT"
	EnvCatalogRegion     = "LAUNCHER_CATALOG_REGION"
	EnvCatalogAccessKey  = "LAUNCHER_CATALOG_ACCESS_KEY"
	EnvCatalogSecretKey  = "LAUNCHER_CATALOG_SECRET_KEY"
)

// Load reads the configuration at path, applies environment overrides and
// defaults, and validates the result. An empty path searches for
// launcher.yaml with FindConfigFile; when none exists the defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithoutValidation(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadWithoutValidation is Load without the final validation.
func LoadWithoutValidation(path string) (*Config, error) {
	if path == "" {
		found, err := FindConfigFile()
		if err == nil {
			path = found
		}
	}

	cfg := &Config{}
	if path != "" {
		var err error
		cfg, err = LoadFile(path)
		if err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// LoadFile reads and parses the configuration from a YAML file without
// applying overrides or defaults.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// applyEnv overrides settings with the environment variables that are set.
func (c *Config) applyEnv() {
	override := func(dst *string, env string) {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}

	override(&c.GitHub.Token, EnvGitHubToken)
	override(&c.GitHub.APIURL, EnvGitHubAPIURL)
	override(&c.OpenShift.Token, EnvOpenShiftToken)
	override(&c.OpenShift.ClustersFile, EnvOpenShiftClusters)
	override(&c.OpenShift.Cluster, EnvOpenShiftCluster)

	source := string(c.Catalog.Source)
	override(&source, EnvCatalogSource)
	c.Catalog.Source = CatalogSource(source)
	override(&c.Catalog.Path, EnvCatalogPath)
	override(&c.Catalog.URL, EnvCatalogURL)
	override(&c.Catalog.Ref, EnvCatalogRef)
	override(&c.Catalog.Bucket, EnvCatalogBucket)
	override(&c.Catalog.Prefix, EnvCatalogPrefix)
	override(&c.Catalog.Endpoint, EnvCatalogEndpoint)
	override(&c.Catalog.Region, EnvCatalogRegion)
	override(&c.Catalog.AccessKey, EnvCatalogAccessKey)
	override(&c.Catalog.SecretKey, EnvCatalogSecretKey)
}

// FindConfigFile searches for launcher.yaml in the current directory and then
// in each parent directory.
func FindConfigFile() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	dir := cwd
	for {
		path := filepath.Join(dir, DefaultConfigFilename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("config file %s not found", DefaultConfigFilename)
}

// Save writes a configuration to a file.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
