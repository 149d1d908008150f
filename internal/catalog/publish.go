package catalog

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// BucketStore is the object store used to publish a catalog.
// Implemented by internal/platform/s3.Client.
type BucketStore interface {
	ObjectStore
	BucketExists(ctx context.Context, bucket string) (bool, error)
	CreateBucket(ctx context.Context, bucket string) error
	PutObject(ctx context.Context, bucket, key string, data []byte) error
	DeleteObject(ctx context.Context, bucket, key string) error
}

// PublishResult summarizes a Publish run.
type PublishResult struct {
	Boosters int
	Uploaded []string
	Deleted  []string
}

// Publish uploads the catalog in fs to bucket under prefix so it can be read
// back with S3Source. The catalog is loaded first and nothing is uploaded if
// it is invalid. Objects under prefix that are not part of the catalog are
// deleted.
func Publish(ctx context.Context, fs billy.Filesystem, store BucketStore, bucket, prefix string) (*PublishResult, error) {
	c, err := Load(fs, "")
	if err != nil {
		return nil, err
	}

	exists, err := store.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := store.CreateBucket(ctx, bucket); err != nil {
			return nil, err
		}
	}

	files, err := catalogFiles(fs)
	if err != nil {
		return nil, err
	}

	result := &PublishResult{Boosters: c.Len()}
	uploaded := make(map[string]bool, len(files))
	for _, file := range files {
		data, err := util.ReadFile(fs, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		key := objectKey(prefix, file)
		if err := store.PutObject(ctx, bucket, key, data); err != nil {
			return nil, err
		}
		uploaded[key] = true
		result.Uploaded = append(result.Uploaded, key)
	}

	listPrefix := prefix
	if listPrefix != "" && !strings.HasSuffix(listPrefix, "/") {
		listPrefix += "/"
	}
	existing, err := store.ListObjects(ctx, bucket, listPrefix)
	if err != nil {
		return nil, err
	}
	for _, key := range existing {
		if uploaded[key] {
			continue
		}
		if err := store.DeleteObject(ctx, bucket, key); err != nil {
			return nil, err
		}
		result.Deleted = append(result.Deleted, key)
	}

	return result, nil
}

// catalogFiles returns the metadata and booster files of the catalog in fs.
func catalogFiles(fs billy.Filesystem) ([]string, error) {
	var files []string
	err := util.Walk(fs, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Name() == BoosterFile || p == "/"+MetadataFile {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk catalog: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func objectKey(prefix, file string) string {
	rel := strings.TrimPrefix(filepath.ToSlash(file), "/")
	if prefix == "" {
		return rel
	}
	return path.Join(prefix, rel)
}
