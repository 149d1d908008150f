package provisioning

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/imamik/launcher/internal/config"
	"github.com/imamik/launcher/internal/platform/github"
	"github.com/imamik/launcher/internal/platform/openshift"
)

// fakeGitHub implements github.Service for testing.
type fakeGitHub struct {
	user    *github.User
	userErr error

	createErr error
	pushErr   error

	// hookErrs maps a webhook URL to the error CreateHook returns for it.
	hookErrs   map[string]error
	existing   map[string]*github.Hook
	getHookErr error

	created      []string
	pushed       []string
	pushedReadme string
	hookEvents   map[string][]string
}

func newFakeGitHub() *fakeGitHub {
	return &fakeGitHub{
		user:       &github.User{Login: "octocat"},
		hookErrs:   make(map[string]error),
		existing:   make(map[string]*github.Hook),
		hookEvents: make(map[string][]string),
	}
}

func (f *fakeGitHub) LoggedUser(_ context.Context) (*github.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.user, nil
}

func (f *fakeGitHub) CreateRepository(_ context.Context, name, _ string) (*github.Repository, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, name)
	return &github.Repository{
		Owner:    f.user.Login,
		Name:     name,
		FullName: f.user.Login + "/" + name,
		HTMLURL:  "https://github.com/" + f.user.Login + "/" + name,
		CloneURL: "https://github.com/" + f.user.Login + "/" + name + ".git",
	}, nil
}

func (f *fakeGitHub) Push(_ context.Context, _ *github.Repository, dir string) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushed = append(f.pushed, dir)
	if data, err := os.ReadFile(filepath.Join(dir, ReadmeFile)); err == nil {
		f.pushedReadme = string(data)
	}
	return nil
}

func (f *fakeGitHub) CreateHook(_ context.Context, _ *github.Repository, hookURL string, events ...string) (*github.Hook, error) {
	f.hookEvents[hookURL] = events
	if err := f.hookErrs[hookURL]; err != nil {
		return nil, err
	}
	return &github.Hook{ID: int64(len(f.hookEvents)), URL: hookURL, Events: events}, nil
}

func (f *fakeGitHub) GetHook(_ context.Context, _ *github.Repository, hookURL string) (*github.Hook, bool, error) {
	if f.getHookErr != nil {
		return nil, false, f.getHookErr
	}
	h, ok := f.existing[hookURL]
	return h, ok, nil
}

func (f *fakeGitHub) factory() github.Factory {
	return func(github.Identity) (github.Service, error) { return f, nil }
}

// fakeOpenShift implements openshift.Service for testing.
type fakeOpenShift struct {
	project *openshift.Project
	findErr error
	urls    []string
	urlsErr error
}

func (f *fakeOpenShift) FindProject(_ context.Context, name string) (*openshift.Project, bool, error) {
	if f.findErr != nil {
		return nil, false, f.findErr
	}
	if f.project == nil || f.project.Name != name {
		return nil, false, nil
	}
	return f.project, true, nil
}

func (f *fakeOpenShift) WebhookURLs(_ context.Context, _ *openshift.Project) ([]*url.URL, error) {
	if f.urlsErr != nil {
		return nil, f.urlsErr
	}
	out := make([]*url.URL, 0, len(f.urls))
	for _, raw := range f.urls {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeOpenShift) factory() openshift.Factory {
	return func(openshift.Cluster, openshift.Identity) (openshift.Service, error) { return f, nil }
}

func failingGitHubFactory(github.Identity) (github.Service, error) {
	return nil, errors.New("GitHub token is required")
}

func newTestContext(t *testing.T) (*Context, *RecordingEmitter) {
	t.Helper()
	rec := &RecordingEmitter{}
	ctx := NewContext(log.IntoContext(context.Background(), testr.New(t)), rec)
	ctx.Timeouts = &config.Timeouts{
		GitHub:    5 * time.Second,
		Push:      5 * time.Second,
		OpenShift: 5 * time.Second,
	}
	return ctx, rec
}

func testProjectile(t *testing.T) *Projectile {
	t.Helper()
	p := NewProjectile()
	p.GitHubIdentity = github.Identity{Token: "gh-token"}
	p.OpenShiftIdentity = openshift.Identity{Token: "oc-token"}
	p.GitHubRepositoryDescription = "my first booster"
	p.OpenShiftProjectName = "demo"
	p.OpenShiftClusterName = "starter"
	p.ProjectLocation = t.TempDir()
	return p
}

func testRepository() *github.Repository {
	return &github.Repository{
		Owner:    "octocat",
		Name:     "demo",
		FullName: "octocat/demo",
		HTMLURL:  "https://github.com/octocat/demo",
		CloneURL: "https://github.com/octocat/demo.git",
	}
}

func writeReadme(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ReadmeFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
	return path
}
