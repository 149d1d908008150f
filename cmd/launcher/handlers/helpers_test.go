package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imamik/launcher/internal/catalog"
	"github.com/imamik/launcher/internal/config"
	"github.com/imamik/launcher/internal/config/wizard"
	"github.com/imamik/launcher/internal/platform/github"
	"github.com/imamik/launcher/internal/platform/openshift"
)

var (
	missionREST = catalog.Mission{ID: "rest-http", Name: "REST API Level 0"}
	missionCRUD = catalog.Mission{ID: "crud", Name: "CRUD"}

	runtimeVertx  = catalog.Runtime{ID: "vert.x", Name: "Eclipse Vert.x"}
	runtimeSpring = catalog.Runtime{ID: "spring-boot", Name: "Spring Boot"}
)

func testCatalog() *catalog.Catalog {
	return catalog.New(
		&catalog.Booster{Name: "rest-vertx", Mission: missionREST, Runtime: runtimeVertx, Version: "community"},
		&catalog.Booster{
			Name:     "rest-spring",
			Mission:  missionREST,
			Runtime:  runtimeSpring,
			Metadata: map[string]any{catalog.MetadataRunsOn: "pro"},
		},
		&catalog.Booster{
			Name:     "crud-spring",
			Mission:  missionCRUD,
			Runtime:  runtimeSpring,
			Metadata: map[string]any{catalog.MetadataRunsOn: []any{"!starter"}},
		},
	)
}

func testClusters() openshift.ClusterRegistry {
	return openshift.NewClusterRegistry(
		openshift.Cluster{ID: "starter", Name: "Starter", Type: "starter", APIURL: "https://api.starter.example.com"},
		openshift.Cluster{ID: "pro", Type: "pro", APIURL: "https://api.pro.example.com"},
	)
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.GitHub.Token = "gh-token"
	cfg.OpenShift.Token = "oc-token"
	return cfg
}

// stubHandlers replaces the factory variables with test doubles and returns
// the buffer receiving command output. The originals are restored on cleanup.
func stubHandlers(t *testing.T) *bytes.Buffer {
	t.Helper()

	origLoadConfig := loadConfig
	origLoadCatalog := loadCatalog
	origLoadClusters := loadClusterRegistry
	origGitHub := newGitHubFactory
	origOpenShift := newOpenShiftFactory
	origCheckout := checkoutBooster
	origWizard := runWizard
	origTUI := runProvisionTUI
	origTTY := isInteractiveTTY
	origStdout := stdout
	origBucketStore := newBucketStore
	t.Cleanup(func() {
		loadConfig = origLoadConfig
		loadCatalog = origLoadCatalog
		loadClusterRegistry = origLoadClusters
		newGitHubFactory = origGitHub
		newOpenShiftFactory = origOpenShift
		checkoutBooster = origCheckout
		runWizard = origWizard
		runProvisionTUI = origTUI
		isInteractiveTTY = origTTY
		stdout = origStdout
		newBucketStore = origBucketStore
	})

	loadConfig = func(_ string) (*config.Config, error) { return testConfig(), nil }
	loadCatalog = func(_ context.Context, _ *config.Config) (*catalog.Catalog, error) { return testCatalog(), nil }
	loadClusterRegistry = func(_ string) (openshift.ClusterRegistry, error) { return testClusters(), nil }
	checkoutBooster = func(_ context.Context, b *catalog.Booster, dir string) error {
		return os.WriteFile(filepath.Join(dir, "README.adoc"), []byte("= "+b.Name+"\n${loggedUser}\n"), 0o644)
	}
	runWizard = func(_ context.Context, _ *wizard.Wizard, _ wizard.Selections) (*wizard.Selections, error) {
		t.Fatal("wizard started for complete selections")
		return nil, nil
	}
	isInteractiveTTY = func() bool { return false }

	out := &bytes.Buffer{}
	stdout = out
	return out
}

// fakeGitHub implements github.Service for testing.
type fakeGitHub struct {
	mu      sync.Mutex
	created []string
	pushed  []string
	hooks   []string
	pushErr error
}

func (f *fakeGitHub) factory() github.Factory {
	return func(_ github.Identity) (github.Service, error) { return f, nil }
}

func (f *fakeGitHub) LoggedUser(_ context.Context) (*github.User, error) {
	return &github.User{Login: "octocat"}, nil
}

func (f *fakeGitHub) CreateRepository(_ context.Context, name, _ string) (*github.Repository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, name)
	return &github.Repository{
		Owner:    "octocat",
		Name:     name,
		FullName: "octocat/" + name,
		HTMLURL:  "https://github.com/octocat/" + name,
		CloneURL: "https://github.com/octocat/" + name + ".git",
	}, nil
}

func (f *fakeGitHub) Push(_ context.Context, _ *github.Repository, dir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushed = append(f.pushed, dir)
	return nil
}

func (f *fakeGitHub) CreateHook(_ context.Context, _ *github.Repository, hookURL string, events ...string) (*github.Hook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hooks = append(f.hooks, hookURL)
	return &github.Hook{ID: int64(len(f.hooks)), URL: hookURL, Events: events}, nil
}

func (f *fakeGitHub) GetHook(_ context.Context, _ *github.Repository, _ string) (*github.Hook, bool, error) {
	return nil, false, nil
}

// fakeOpenShift implements openshift.Service for testing.
type fakeOpenShift struct {
	cluster openshift.Cluster
}

func fakeOpenShiftFactory() openshift.Factory {
	return func(cluster openshift.Cluster, _ openshift.Identity) (openshift.Service, error) {
		return &fakeOpenShift{cluster: cluster}, nil
	}
}

func (f *fakeOpenShift) FindProject(_ context.Context, name string) (*openshift.Project, bool, error) {
	return &openshift.Project{Name: name}, true, nil
}

func (f *fakeOpenShift) WebhookURLs(_ context.Context, project *openshift.Project) ([]*url.URL, error) {
	u, err := url.Parse(fmt.Sprintf("%s/apis/build.openshift.io/v1/namespaces/%s/buildconfigs/%s/webhooks/s3cr3t/github",
		f.cluster.APIURL, project.Name, project.Name))
	if err != nil {
		return nil, err
	}
	return []*url.URL{u}, nil
}

// memoryBucket implements catalog.BucketStore in memory.
type memoryBucket struct {
	buckets map[string]map[string][]byte
}

func newMemoryBucket() *memoryBucket {
	return &memoryBucket{buckets: make(map[string]map[string][]byte)}
}

func (m *memoryBucket) ListObjects(_ context.Context, bucket, prefix string) ([]string, error) {
	var keys []string
	for k := range m.buckets[bucket] {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *memoryBucket) GetObject(_ context.Context, bucket, key string) ([]byte, error) {
	data, ok := m.buckets[bucket][key]
	if !ok {
		return nil, fmt.Errorf("object %s not found", key)
	}
	return data, nil
}

func (m *memoryBucket) BucketExists(_ context.Context, bucket string) (bool, error) {
	_, ok := m.buckets[bucket]
	return ok, nil
}

func (m *memoryBucket) CreateBucket(_ context.Context, bucket string) error {
	m.buckets[bucket] = make(map[string][]byte)
	return nil
}

func (m *memoryBucket) PutObject(_ context.Context, bucket, key string, data []byte) error {
	m.buckets[bucket][key] = data
	return nil
}

func (m *memoryBucket) DeleteObject(_ context.Context, bucket, key string) error {
	delete(m.buckets[bucket], key)
	return nil
}

// writeCatalogDir writes a minimal on-disk catalog and returns its root.
func writeCatalogDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"metadata.yaml": `missions:
- id: rest-http
  name: REST API Level 0
runtimes:
- id: vert.x
  name: Eclipse Vert.x
`,
		"rest-http/vert.x/community/booster.yaml": `name: rest-vertx
source:
  git:
    url: https://github.com/example/rest-vertx
    ref: master
`,
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}
