package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// Checkout copies the content of booster b into dir. The booster repository is
// cloned at its ref, the optional source path is selected, and the git
// metadata is dropped so the result can become a new repository.
func Checkout(ctx context.Context, b *Booster, dir string) error {
	if b.Source.GitRepo == "" {
		return fmt.Errorf("booster %s has no git repository", b)
	}
	if p := filepath.FromSlash(b.Source.Path); p != "" && !filepath.IsLocal(p) {
		return fmt.Errorf("booster %s source path %q is outside the repository", b, b.Source.Path)
	}

	tmp, err := os.MkdirTemp("", "booster-")
	if err != nil {
		return fmt.Errorf("failed to create temporary directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmp) }()

	_, err = git.PlainCloneContext(ctx, tmp, false, &git.CloneOptions{
		URL:           b.Source.GitRepo,
		ReferenceName: referenceName(b.Source.GitRef),
		SingleBranch:  true,
		Depth:         cloneDepth,
	})
	if err != nil {
		return fmt.Errorf("failed to clone booster %s from %s: %w", b, b.Source.GitRepo, err)
	}

	src := filepath.Join(tmp, filepath.FromSlash(b.Source.Path))
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return fmt.Errorf("booster %s has no directory %q", b, b.Source.Path)
	}
	if !within(tmp, src) {
		return fmt.Errorf("booster %s source path %q is outside the repository", b, b.Source.Path)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return copyTree(src, dir)
}

// within reports whether path resolves to root or a directory below it once
// symlinks are followed.
func within(root, path string) bool {
	root, err := filepath.EvalSymlinks(root)
	if err != nil {
		return false
	}
	path, err = filepath.EvalSymlinks(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, path)
	return err == nil && filepath.IsLocal(rel)
}

// copyTree copies regular files and directories from src to dst, skipping
// .git directories.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) (err error) {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	_, err = io.Copy(out, in)
	return err
}
