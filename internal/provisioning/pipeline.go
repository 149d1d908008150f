package provisioning

import (
	"fmt"
	"time"

	"github.com/imamik/launcher/internal/platform/github"
	"github.com/imamik/launcher/internal/platform/openshift"
)

// Pipeline runs steps in order.
type Pipeline struct {
	Steps []Step
}

// NewPipeline creates a pipeline of steps.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{Steps: steps}
}

// Dependencies are the services the GitHub steps are built from.
type Dependencies struct {
	GitHub    github.Factory
	OpenShift openshift.Factory
	Clusters  openshift.ClusterRegistry
}

// NewGitHubPipeline returns the create, push and webhook steps.
func NewGitHubPipeline(deps Dependencies) *Pipeline {
	return NewPipeline(
		&CreateRepositoryStep{GitHub: deps.GitHub},
		&PushStep{GitHub: deps.GitHub},
		&WebhookStep{GitHub: deps.GitHub, OpenShift: deps.OpenShift, Clusters: deps.Clusters},
	)
}

// Types returns the step types in execution order.
func (p *Pipeline) Types() []StatusEventType {
	out := make([]StatusEventType, len(p.Steps))
	for i, s := range p.Steps {
		out[i] = s.Type()
	}
	return out
}

// Run executes all steps sequentially and stops at the first failure.
func (p *Pipeline) Run(ctx *Context, req *Request) error {
	if req == nil || req.Projectile == nil {
		return fmt.Errorf("%w: projectile is not set", ErrIllegalState)
	}

	start := time.Now()
	logger := ctx.Logger.WithValues("projectile", req.Projectile.ID)
	logger.Info(fmt.Sprintf("Starting provisioning with %d steps...", len(p.Steps)))

	for i, step := range p.Steps {
		stepStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", step.Type(), i+1, len(p.Steps))

		logger.Info(fmt.Sprintf("[%s] starting", name))

		if err := step.Execute(ctx, req); err != nil {
			recordStep(step.Type(), stepFailed, time.Since(stepStart))
			logger.Error(err, fmt.Sprintf("[%s] failed", name))
			return fmt.Errorf("%s step failed: %w", step.Type(), err)
		}

		elapsed := time.Since(stepStart)
		recordStep(step.Type(), stepSucceeded, elapsed)
		logger.Info(fmt.Sprintf("[%s] completed in %v", name, elapsed.Round(time.Millisecond)))
	}

	logger.Info(fmt.Sprintf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond)))
	return nil
}
