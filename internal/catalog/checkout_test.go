package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckout(t *testing.T) {
	t.Parallel()

	url, _ := newGitRepo(t, map[string]string{
		"README.md":         "root readme",
		"app/README.adoc":   "= ${loggedUser}'s app",
		"app/src/main.go":   "package main",
		"other/ignored.txt": "x",
	})
	b := &Booster{
		Mission: Mission{ID: "crud"},
		Runtime: Runtime{ID: "go"},
		Source:  BoosterSource{GitRepo: url, Path: "app"},
	}

	dst := filepath.Join(t.TempDir(), "project")
	require.NoError(t, Checkout(context.Background(), b, dst))

	data, err := os.ReadFile(filepath.Join(dst, "README.adoc"))
	require.NoError(t, err)
	assert.Equal(t, "= ${loggedUser}'s app", string(data))
	assert.FileExists(t, filepath.Join(dst, "src", "main.go"))
	assert.NoFileExists(t, filepath.Join(dst, "README.md"))
	assert.NoDirExists(t, filepath.Join(dst, ".git"))
}

func TestCheckout_WholeRepository(t *testing.T) {
	t.Parallel()

	url, _ := newGitRepo(t, map[string]string{"pom.xml": "<project/>"})
	b := &Booster{Source: BoosterSource{GitRepo: url}}

	dst := t.TempDir()
	require.NoError(t, Checkout(context.Background(), b, dst))
	assert.FileExists(t, filepath.Join(dst, "pom.xml"))
	assert.NoDirExists(t, filepath.Join(dst, ".git"))
}

func TestCheckout_Errors(t *testing.T) {
	t.Parallel()

	err := Checkout(context.Background(), &Booster{}, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no git repository")

	url, _ := newGitRepo(t, map[string]string{"a.txt": "a"})
	err = Checkout(context.Background(), &Booster{Source: BoosterSource{GitRepo: url, Path: "missing"}}, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `has no directory "missing"`)
}

func TestCheckout_PathOutsideRepository(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "link")))
	commitFiles(t, repo, dir, map[string]string{"app/main.go": "package main"})
	url := filepath.Join(dir, ".git")

	for _, path := range []string{"../", "app/../..", "/etc", "link"} {
		dst := t.TempDir()
		err := Checkout(context.Background(), &Booster{Source: BoosterSource{GitRepo: url, Path: path}}, dst)
		require.Error(t, err, path)
		assert.Contains(t, err.Error(), "is outside the repository", path)
		assert.NoFileExists(t, filepath.Join(dst, "secret.txt"))
	}
}

func TestWithin(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0o755))

	assert.True(t, within(root, root))
	assert.True(t, within(root, filepath.Join(root, "a", "b")))
	assert.False(t, within(filepath.Join(root, "a"), root))
	assert.False(t, within(root, filepath.Join(root, "missing")))
}

func TestCopyTree_PreservesMode(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "mvnw"), []byte("#!/bin/sh"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(src, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, ".git", "HEAD"), []byte("ref"), 0o644))

	dst := t.TempDir()
	require.NoError(t, copyTree(src, dst))

	info, err := os.Stat(filepath.Join(dst, "mvnw"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	assert.NoDirExists(t, filepath.Join(dst, ".git"))
}
