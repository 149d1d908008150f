package provisioning

import (
	"fmt"

	"github.com/imamik/launcher/internal/platform/github"
	"github.com/imamik/launcher/internal/platform/openshift"
)

// Step is one stage of the provisioning sequence.
type Step interface {
	// Type identifies the step and the status event it emits.
	Type() StatusEventType
	// Execute runs the step, recording its results on req.
	Execute(ctx *Context, req *Request) error
}

// CreateRepositoryStep creates the GitHub repository of the project.
type CreateRepositoryStep struct {
	GitHub github.Factory
}

// Type implements Step.
func (s *CreateRepositoryStep) Type() StatusEventType { return StatusGitHubCreate }

// Execute implements Step.
func (s *CreateRepositoryStep) Execute(ctx *Context, req *Request) error {
	if req.Repository != nil {
		return fmt.Errorf("%w: GitHub repository is already set", ErrIllegalState)
	}

	p := req.Projectile
	name := p.RepositoryName()
	if name == "" {
		return fmt.Errorf("%w: GitHub repository name is not set", ErrIllegalState)
	}

	svc, err := s.GitHub(p.GitHubIdentity)
	if err != nil {
		return fmt.Errorf("failed to create GitHub service: %w", err)
	}

	callCtx, cancel := ctx.withTimeout(ctx.timeouts().GitHub)
	defer cancel()

	repo, err := svc.CreateRepository(callCtx, name, p.GitHubRepositoryDescription)
	if err != nil {
		return err
	}
	req.Repository = repo
	ctx.Logger.Info("created GitHub repository", "repository", repo.FullName)

	ctx.emit(req, StatusGitHubCreate, map[string]any{"location": repo.HTMLURL})
	return nil
}

// PushStep pushes the generated project into the repository.
type PushStep struct {
	GitHub github.Factory
}

// Type implements Step.
func (s *PushStep) Type() StatusEventType { return StatusGitHubPushed }

// Execute implements Step.
func (s *PushStep) Execute(ctx *Context, req *Request) error {
	if req.Repository == nil {
		return fmt.Errorf("%w: GitHub repository is not set", ErrIllegalState)
	}

	p := req.Projectile
	svc, err := s.GitHub(p.GitHubIdentity)
	if err != nil {
		return fmt.Errorf("failed to create GitHub service: %w", err)
	}

	// README substitution is best effort.
	path := readmePath(p.ProjectLocation)
	_, err = substituteFile(path, func() (map[string]string, error) {
		userCtx, cancel := ctx.withTimeout(ctx.timeouts().GitHub)
		defer cancel()
		user, err := svc.LoggedUser(userCtx)
		if err != nil {
			return nil, err
		}
		return map[string]string{LoggedUserVariable: user.Login}, nil
	})
	if err != nil {
		ctx.Logger.Error(err, "error while replacing README variables", "path", path)
	}

	pushCtx, cancel := ctx.withTimeout(ctx.timeouts().Push)
	defer cancel()

	if err := svc.Push(pushCtx, req.Repository, p.ProjectLocation); err != nil {
		return err
	}
	ctx.Logger.Info("pushed project", "repository", req.Repository.FullName, "dir", p.ProjectLocation)

	ctx.emit(req, StatusGitHubPushed, nil)
	return nil
}

// WebhookStep registers the OpenShift build webhooks on the repository.
type WebhookStep struct {
	GitHub    github.Factory
	OpenShift openshift.Factory
	Clusters  openshift.ClusterRegistry
}

// Type implements Step.
func (s *WebhookStep) Type() StatusEventType { return StatusGitHubWebhook }

// Execute implements Step.
func (s *WebhookStep) Execute(ctx *Context, req *Request) error {
	if req.Repository == nil {
		return fmt.Errorf("%w: GitHub repository is not set", ErrIllegalState)
	}

	p := req.Projectile
	cluster, ok := s.Clusters.FindClusterByID(p.OpenShiftClusterName)
	if !ok {
		return fmt.Errorf("%w: OpenShift cluster '%s' was not found", ErrNotFound, p.OpenShiftClusterName)
	}

	oc, err := s.OpenShift(cluster, p.OpenShiftIdentity)
	if err != nil {
		return fmt.Errorf("failed to create OpenShift service for cluster %s: %w", cluster.ID, err)
	}

	urls, err := s.webhookURLs(ctx, oc, p.OpenShiftProjectName)
	if err != nil {
		return err
	}

	svc, err := s.GitHub(p.GitHubIdentity)
	if err != nil {
		return fmt.Errorf("failed to create GitHub service: %w", err)
	}

	hooks := make([]*github.Hook, 0, len(urls))
	for _, u := range urls {
		hook, err := s.registerHook(ctx, svc, req.Repository, u)
		if err != nil {
			return err
		}
		if hook != nil {
			hooks = append(hooks, hook)
		}
	}
	req.Webhooks = hooks
	ctx.Logger.Info("registered webhooks", "repository", req.Repository.FullName, "count", len(hooks))

	ctx.emit(req, StatusGitHubWebhook, nil)
	return nil
}

func (s *WebhookStep) webhookURLs(ctx *Context, oc openshift.Service, projectName string) ([]string, error) {
	callCtx, cancel := ctx.withTimeout(ctx.timeouts().OpenShift)
	defer cancel()

	project, found, err := oc.FindProject(callCtx, projectName)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: OpenShift project '%s' was not found", ErrNotFound, projectName)
	}

	urls, err := oc.WebhookURLs(callCtx, project)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		out = append(out, u.String())
	}
	return out, nil
}

// registerHook creates the webhook for url. An existing webhook is looked up
// instead; when that lookup fails the URL is dropped and nil is returned.
func (s *WebhookStep) registerHook(ctx *Context, svc github.Service, repo *github.Repository, url string) (*github.Hook, error) {
	callCtx, cancel := ctx.withTimeout(ctx.timeouts().GitHub)
	defer cancel()

	hook, err := svc.CreateHook(callCtx, repo, url, github.EventPush, github.EventPullRequest, github.EventIssueComment)
	if err == nil {
		recordWebhook(webhookCreated)
		return hook, nil
	}
	if !github.IsDuplicateHook(err) {
		return nil, err
	}
	ctx.Logger.V(1).Info("webhook already exists", "url", url, "reason", err.Error())

	existing, found, err := svc.GetHook(callCtx, repo, url)
	switch {
	case err != nil:
		ctx.Logger.V(1).Info("failed to look up existing webhook", "url", url, "reason", err.Error())
	case !found:
		ctx.Logger.V(1).Info("existing webhook not found", "url", url)
	default:
		recordWebhook(webhookExisting)
		return existing, nil
	}
	recordWebhook(webhookDropped)
	return nil, nil
}
