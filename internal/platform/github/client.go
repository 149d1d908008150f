package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"
)

// Client implements Service against the GitHub REST API.
type Client struct {
	gh    *gh.Client
	token string
}

// Option configures a Client.
type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL points the client at a GitHub Enterprise API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// NewService creates a client authenticated as identity.
func NewService(identity Identity, opts ...Option) (*Client, error) {
	if identity.Token == "" {
		return nil, errors.New("GitHub token is required")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := gh.NewClient(o.httpClient).WithAuthToken(identity.Token)
	if o.baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(o.baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", o.baseURL, err)
		}
		client.BaseURL = u
	}

	return &Client{gh: client, token: identity.Token}, nil
}

// NewFactory returns a Factory that applies opts to every client.
func NewFactory(opts ...Option) Factory {
	return func(identity Identity) (Service, error) {
		return NewService(identity, opts...)
	}
}

// LoggedUser returns the authenticated user.
func (c *Client) LoggedUser(ctx context.Context) (*User, error) {
	u, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get authenticated user: %w", err)
	}
	return &User{Login: u.GetLogin(), Name: u.GetName(), Email: u.GetEmail()}, nil
}

// CreateRepository creates a public repository owned by the authenticated user.
func (c *Client) CreateRepository(ctx context.Context, name, description string) (*Repository, error) {
	repo, _, err := c.gh.Repositories.Create(ctx, "", &gh.Repository{
		Name:        gh.String(name),
		Description: gh.String(description),
		Private:     gh.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create repository %s: %w", name, err)
	}
	return toRepository(repo), nil
}

// CreateHook registers a JSON webhook for events on repo.
func (c *Client) CreateHook(ctx context.Context, repo *Repository, hookURL string, events ...string) (*Hook, error) {
	hook, _, err := c.gh.Repositories.CreateHook(ctx, repo.Owner, repo.Name, &gh.Hook{
		Events: events,
		Active: gh.Bool(true),
		Config: &gh.HookConfig{
			URL:         gh.String(hookURL),
			ContentType: gh.String("json"),
		},
	})
	if err != nil {
		if isHookExists(err) {
			return nil, &DuplicateHookError{Repository: repo.FullName, URL: hookURL, Err: err}
		}
		return nil, fmt.Errorf("failed to create webhook on %s: %w", repo.FullName, err)
	}
	return toHook(hook), nil
}

// GetHook looks up a webhook of repo by its payload URL.
func (c *Client) GetHook(ctx context.Context, repo *Repository, hookURL string) (*Hook, bool, error) {
	opts := &gh.ListOptions{PerPage: 100}
	for {
		hooks, resp, err := c.gh.Repositories.ListHooks(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, false, fmt.Errorf("failed to list webhooks of %s: %w", repo.FullName, err)
		}
		for _, h := range hooks {
			if h.GetConfig().GetURL() == hookURL {
				return toHook(h), true, nil
			}
		}
		if resp == nil || resp.NextPage == 0 {
			return nil, false, nil
		}
		opts.Page = resp.NextPage
	}
}
