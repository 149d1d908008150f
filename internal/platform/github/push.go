package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// commitMessage is used for the commit created from the generated project.
const commitMessage = "Initial import"

// Push commits the content of dir and pushes it to repo. The directory is
// initialized as a git repository when needed and its origin remote is
// pointed at the repository clone URL.
func (c *Client) Push(ctx context.Context, repo *Repository, dir string) error {
	user, err := c.LoggedUser(ctx)
	if err != nil {
		return err
	}
	return pushDirectory(ctx, dir, repo.CloneURL, user, &githttp.BasicAuth{
		Username: user.Login,
		Password: c.token,
	})
}

func pushDirectory(ctx context.Context, dir, remoteURL string, user *User, auth *githttp.BasicAuth) error {
	r, err := git.PlainOpen(dir)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		r, err = git.PlainInit(dir, false)
	}
	if err != nil {
		return fmt.Errorf("failed to open git repository in %s: %w", dir, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return err
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("failed to stage %s: %w", dir, err)
	}

	_, err = wt.Commit(commitMessage, &git.CommitOptions{Author: signature(user)})
	if err != nil && !errors.Is(err, git.ErrEmptyCommit) {
		return fmt.Errorf("failed to commit %s: %w", dir, err)
	}

	head, err := r.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return fmt.Errorf("%w: %s", ErrEmptyProject, dir)
	}
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	if err := r.DeleteRemote(git.DefaultRemoteName); err != nil && !errors.Is(err, git.ErrRemoteNotFound) {
		return err
	}
	_, err = r.CreateRemote(&config.RemoteConfig{
		Name: git.DefaultRemoteName,
		URLs: []string{remoteURL},
	})
	if err != nil {
		return fmt.Errorf("failed to configure remote: %w", err)
	}

	refSpec := config.RefSpec(fmt.Sprintf("%s:%s", head.Name(), head.Name()))
	opts := &git.PushOptions{
		RemoteName: git.DefaultRemoteName,
		RefSpecs:   []config.RefSpec{refSpec},
	}
	if auth != nil && auth.Password != "" {
		opts.Auth = auth
	}

	err = r.PushContext(ctx, opts)
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push to %s: %w", remoteURL, err)
	}
	return nil
}

func signature(user *User) *object.Signature {
	name := user.Name
	if name == "" {
		name = user.Login
	}
	email := user.Email
	if email == "" {
		email = user.Login + "@users.noreply.github.com"
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}
}
