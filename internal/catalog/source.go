package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/imamik/launcher/internal/util/retry"
)

// Source provides the filesystem a catalog is loaded from.
type Source interface {
	Open(ctx context.Context) (billy.Filesystem, error)
}

// LoadFrom opens src and loads the catalog at its root.
func LoadFrom(ctx context.Context, src Source) (*Catalog, error) {
	fs, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog source: %w", err)
	}
	return Load(fs, "")
}

// DirSource reads the catalog from a local directory.
type DirSource struct {
	Path string
}

// Open implements Source.
func (s DirSource) Open(_ context.Context) (billy.Filesystem, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, fmt.Errorf("catalog directory %s: %w", s.Path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog path %s is not a directory", s.Path)
	}
	return osfs.New(s.Path), nil
}

// GitSource clones the catalog from a git repository into a local cache and
// refreshes it on later runs.
type GitSource struct {
	URL string
	// Ref is a branch name or a full reference ("refs/tags/v1"). Empty means
	// the remote default branch.
	Ref string
	// CacheDir overrides the XDG cache location.
	CacheDir string
	Retry    []retry.Option
}

// Open implements Source.
func (s GitSource) Open(ctx context.Context) (billy.Filesystem, error) {
	if s.URL == "" {
		return nil, errors.New("catalog git URL is required")
	}

	dir := s.CacheDir
	if dir == "" {
		dir = gitCacheDir(s.URL, s.Ref)
	}

	err := retry.WithExponentialBackoff(ctx, func() error {
		return s.sync(ctx, dir)
	}, s.Retry...)
	if err != nil {
		return nil, fmt.Errorf("failed to sync catalog %s: %w", s.URL, err)
	}

	return osfs.New(dir), nil
}

func (s GitSource) sync(ctx context.Context, dir string) error {
	repo, err := git.PlainOpen(dir)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return cloneInto(ctx, dir, s.URL, s.Ref)
	}
	if err != nil {
		return retry.Fatal(fmt.Errorf("failed to open cached catalog %s: %w", dir, err))
	}
	return refresh(ctx, repo)
}

// gitCacheDir returns the per-repository cache directory.
func gitCacheDir(url, ref string) string {
	sum := sha256.Sum256([]byte(url + "#" + ref))
	return filepath.Join(xdg.CacheHome, "launcher", "catalog", hex.EncodeToString(sum[:])[:16])
}

// cloneDepth limits the history fetched for catalogs and boosters.
// Zero fetches the full history.
var cloneDepth = 1

// referenceName maps a user supplied ref to a git reference name.
func referenceName(ref string) plumbing.ReferenceName {
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "refs/"):
		return plumbing.ReferenceName(ref)
	default:
		return plumbing.NewBranchReferenceName(ref)
	}
}

func cloneInto(ctx context.Context, dir, url, ref string) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           url,
		ReferenceName: referenceName(ref),
		SingleBranch:  true,
		Depth:         cloneDepth,
	})
	if err == nil {
		return nil
	}

	_ = os.RemoveAll(dir)
	if errors.Is(err, transport.ErrRepositoryNotFound) ||
		errors.Is(err, transport.ErrAuthenticationRequired) ||
		errors.Is(err, plumbing.ErrReferenceNotFound) {
		return retry.Fatal(fmt.Errorf("failed to clone %s: %w", url, err))
	}
	return fmt.Errorf("failed to clone %s: %w", url, err)
}

// refresh fetches the tracked branch and hard resets the worktree onto it.
// Detached checkouts (tags) are left as they are.
func refresh(ctx context.Context, repo *git.Repository) error {
	head, err := repo.Head()
	if err != nil {
		return retry.Fatal(fmt.Errorf("failed to resolve HEAD: %w", err))
	}
	if !head.Name().IsBranch() {
		return nil
	}

	// A clone of the default branch only tracks origin/HEAD, so the branch
	// is fetched by name.
	branch := head.Name().Short()
	remoteName := plumbing.NewRemoteReferenceName(git.DefaultRemoteName, branch)
	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: git.DefaultRemoteName,
		RefSpecs:   []gitconfig.RefSpec{gitconfig.RefSpec("+" + head.Name().String() + ":" + remoteName.String())},
		Depth:      cloneDepth,
		Force:      true,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to fetch: %w", err)
	}

	remoteRef, err := repo.Reference(remoteName, true)
	if err != nil {
		return retry.Fatal(fmt.Errorf("failed to resolve remote branch: %w", err))
	}

	wt, err := repo.Worktree()
	if err != nil {
		return retry.Fatal(err)
	}
	if err := wt.Reset(&git.ResetOptions{Commit: remoteRef.Hash(), Mode: git.HardReset}); err != nil {
		return retry.Fatal(fmt.Errorf("failed to reset to %s: %w", remoteRef.Hash(), err))
	}
	return nil
}

// ObjectStore lists and downloads objects from a bucket.
// Implemented by internal/platform/s3.Client.
type ObjectStore interface {
	ListObjects(ctx context.Context, bucket, prefix string) ([]string, error)
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// S3Source downloads the catalog from an S3-compatible bucket into memory.
type S3Source struct {
	Store  ObjectStore
	Bucket string
	Prefix string
	Retry  []retry.Option
}

// Open implements Source.
func (s S3Source) Open(ctx context.Context) (billy.Filesystem, error) {
	if s.Bucket == "" {
		return nil, errors.New("catalog bucket is required")
	}

	var fs billy.Filesystem
	err := retry.WithExponentialBackoff(ctx, func() error {
		fs = memfs.New()
		return s.download(ctx, fs)
	}, s.Retry...)
	if err != nil {
		return nil, fmt.Errorf("failed to download catalog from bucket %s: %w", s.Bucket, err)
	}
	return fs, nil
}

func (s S3Source) download(ctx context.Context, fs billy.Filesystem) error {
	keys, err := s.Store.ListObjects(ctx, s.Bucket, s.Prefix)
	if err != nil {
		return err
	}

	for _, key := range keys {
		if strings.HasSuffix(key, "/") {
			continue
		}
		data, err := s.Store.GetObject(ctx, s.Bucket, key)
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(key, s.Prefix), "/")
		if rel == "" {
			continue
		}
		if err := util.WriteFile(fs, "/"+rel, data, 0o644); err != nil {
			return retry.Fatal(fmt.Errorf("failed to store %s: %w", key, err))
		}
	}
	return nil
}
