// Package provisioning creates the GitHub side of a new project.
//
// # Steps
//
//   - CreateRepositoryStep creates the GitHub repository (GITHUB_CREATE)
//   - PushStep pushes the generated project into it (GITHUB_PUSHED)
//   - WebhookStep registers the OpenShift build webhooks (GITHUB_WEBHOOK)
//
// # Core Types
//
// Projectile describes the project to create. Request wraps a Projectile and
// accumulates the results of each step (repository, webhooks). Context carries
// the logger, the status emitter and the timeouts. Pipeline runs steps in order
// and stops at the first failure; completed steps are not rolled back.
//
// Every successful step emits one StatusMessageEvent. A failed step emits none.
package provisioning
