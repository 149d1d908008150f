// Package github wraps the GitHub API calls used to provision a project
// repository: creating the repository, pushing the generated project and
// registering build webhooks.
//
// API calls go through google/go-github. Pushes use go-git with the same
// token, so no git binary is required.
package github
