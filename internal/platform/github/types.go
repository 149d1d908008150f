package github

import (
	"context"

	gh "github.com/google/go-github/v66/github"
)

// Webhook events registered for OpenShift builds.
const (
	EventPush         = "push"
	EventPullRequest  = "pull_request"
	EventIssueComment = "issue_comment"
)

// Repository is a GitHub repository owned by the authenticated user.
type Repository struct {
	Owner    string
	Name     string
	FullName string
	HTMLURL  string
	CloneURL string
}

// Hook is a repository webhook.
type Hook struct {
	ID     int64
	URL    string
	Events []string
}

// User is the authenticated GitHub user.
type User struct {
	Login string
	Name  string
	Email string
}

// Service is the set of GitHub operations needed by the provisioning steps.
type Service interface {
	LoggedUser(ctx context.Context) (*User, error)
	CreateRepository(ctx context.Context, name, description string) (*Repository, error)
	Push(ctx context.Context, repo *Repository, dir string) error
	CreateHook(ctx context.Context, repo *Repository, url string, events ...string) (*Hook, error)
	// GetHook looks up a webhook of repo by its payload URL.
	GetHook(ctx context.Context, repo *Repository, url string) (*Hook, bool, error)
}

// Identity authenticates against GitHub.
type Identity struct {
	Token string
}

// Factory creates a Service for an identity.
type Factory func(identity Identity) (Service, error)

func toRepository(r *gh.Repository) *Repository {
	return &Repository{
		Owner:    r.GetOwner().GetLogin(),
		Name:     r.GetName(),
		FullName: r.GetFullName(),
		HTMLURL:  r.GetHTMLURL(),
		CloneURL: r.GetCloneURL(),
	}
}

func toHook(h *gh.Hook) *Hook {
	return &Hook{
		ID:     h.GetID(),
		URL:    h.GetConfig().GetURL(),
		Events: h.Events,
	}
}
