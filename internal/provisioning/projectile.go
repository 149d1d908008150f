package provisioning

import (
	"github.com/google/uuid"

	"github.com/imamik/launcher/internal/catalog"
	"github.com/imamik/launcher/internal/platform/github"
	"github.com/imamik/launcher/internal/platform/openshift"
)

// Projectile describes a project to provision.
type Projectile struct {
	// ID correlates the status events of one provisioning request.
	ID string

	Mission catalog.Mission
	Runtime catalog.Runtime

	GitHubIdentity    github.Identity
	OpenShiftIdentity openshift.Identity

	// GitHubRepositoryName overrides the repository name. Empty means
	// OpenShiftProjectName.
	GitHubRepositoryName        string
	GitHubRepositoryDescription string

	OpenShiftProjectName string
	OpenShiftClusterName string

	// ProjectLocation is the local directory holding the generated project.
	ProjectLocation string
}

// NewProjectile returns a projectile with a fresh correlation ID.
func NewProjectile() *Projectile {
	return &Projectile{ID: uuid.NewString()}
}

// RepositoryName returns the name of the GitHub repository to create.
func (p *Projectile) RepositoryName() string {
	if p.GitHubRepositoryName != "" {
		return p.GitHubRepositoryName
	}
	return p.OpenShiftProjectName
}

// Request is the per-request state threaded through the steps.
type Request struct {
	Projectile *Projectile

	// Repository is set by CreateRepositoryStep.
	Repository *github.Repository
	// Webhooks is set by WebhookStep.
	Webhooks []*github.Hook
}

// NewRequest creates a request for p. A projectile without ID gets one.
func NewRequest(p *Projectile) *Request {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return &Request{Projectile: p}
}
