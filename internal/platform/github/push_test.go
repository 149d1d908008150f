package github

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/client"
	"github.com/go-git/go-git/v5/plumbing/transport/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	client.InstallProtocol("file", server.DefaultServer)
	os.Exit(m.Run())
}

func newBareRemote(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := git.PlainInit(dir, true)
	require.NoError(t, err)
	return dir
}

func remoteFile(t *testing.T, remote, name string) string {
	t.Helper()
	r, err := git.PlainOpen(remote)
	require.NoError(t, err)

	ref, err := r.Reference(plumbing.Master, true)
	require.NoError(t, err)
	commit, err := r.CommitObject(ref.Hash())
	require.NoError(t, err)
	f, err := commit.File(name)
	require.NoError(t, err)
	content, err := f.Contents()
	require.NoError(t, err)
	return content
}

func TestPushDirectory_FreshDirectory(t *testing.T) {
	t.Parallel()

	remote := newBareRemote(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.adoc"), []byte("= octocat"), 0o644))

	err := pushDirectory(context.Background(), dir, remote, &User{Login: "octocat"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "= octocat", remoteFile(t, remote, "README.adoc"))

	r, err := git.PlainOpen(remote)
	require.NoError(t, err)
	ref, err := r.Reference(plumbing.Master, true)
	require.NoError(t, err)
	commit, err := r.CommitObject(ref.Hash())
	require.NoError(t, err)
	assert.Equal(t, commitMessage, commit.Message)
	assert.Equal(t, "octocat@users.noreply.github.com", commit.Author.Email)
}

func TestPushDirectory_ReplacesOrigin(t *testing.T) {
	t.Parallel()

	first := newBareRemote(t)
	second := newBareRemote(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pom.xml"), []byte("<project/>"), 0o644))

	user := &User{Login: "octocat", Name: "The Octocat", Email: "octo@example.com"}
	require.NoError(t, pushDirectory(context.Background(), dir, first, user, nil))

	// Pushing a clean worktree again to a new remote still succeeds.
	require.NoError(t, pushDirectory(context.Background(), dir, second, user, nil))
	assert.Equal(t, "<project/>", remoteFile(t, second, "pom.xml"))

	r, err := git.PlainOpen(dir)
	require.NoError(t, err)
	origin, err := r.Remote(git.DefaultRemoteName)
	require.NoError(t, err)
	assert.Equal(t, []string{second}, origin.Config().URLs)
}

func TestPushDirectory_MissingRemote(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))

	err := pushDirectory(context.Background(), dir, filepath.Join(t.TempDir(), "missing"), &User{Login: "octocat"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to push to")
}

func TestPushDirectory_EmptyDirectory(t *testing.T) {
	t.Parallel()

	remote := newBareRemote(t)
	err := pushDirectory(context.Background(), t.TempDir(), remote, &User{Login: "octocat"}, nil)
	require.ErrorIs(t, err, ErrEmptyProject)

	r, err := git.PlainOpen(remote)
	require.NoError(t, err)
	_, err = r.Reference(plumbing.Master, true)
	assert.ErrorIs(t, err, plumbing.ErrReferenceNotFound)
}

func TestSignature(t *testing.T) {
	t.Parallel()

	sig := signature(&User{Login: "octocat"})
	assert.Equal(t, "octocat", sig.Name)
	assert.Equal(t, "octocat@users.noreply.github.com", sig.Email)

	sig = signature(&User{Login: "octocat", Name: "Octo", Email: "o@example.com"})
	assert.Equal(t, "Octo", sig.Name)
	assert.Equal(t, "o@example.com", sig.Email)
}
