package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"sigs.k8s.io/yaml"
)

const (
	// MetadataFile holds the mission and runtime descriptors.
	MetadataFile = "metadata.yaml"

	// BoosterFile describes one booster.
	BoosterFile = "booster.yaml"
)

// metadataDocument is the on-disk form of MetadataFile.
type metadataDocument struct {
	Missions []Mission `json:"missions"`
	Runtimes []Runtime `json:"runtimes"`
}

// boosterDocument is the on-disk form of BoosterFile.
type boosterDocument struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Mission     string         `json:"mission,omitempty"`
	Runtime     string         `json:"runtime,omitempty"`
	Version     string         `json:"version,omitempty"`
	Source      sourceDocument `json:"source"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type sourceDocument struct {
	Git struct {
		URL string `json:"url"`
		Ref string `json:"ref"`
	} `json:"git"`
	Path string `json:"path,omitempty"`
}

// Load reads a catalog rooted at root in fs. An empty root means the
// filesystem root.
func Load(fs billy.Filesystem, root string) (*Catalog, error) {
	if root == "" {
		root = "/"
	}

	meta, err := loadMetadata(fs, filepath.Join(root, MetadataFile))
	if err != nil {
		return nil, err
	}

	if _, err := fs.Stat(root); errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}

	var paths []string
	err = util.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Name() == BoosterFile {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk catalog %s: %w", root, err)
	}
	sort.Strings(paths)

	boosters := make([]*Booster, 0, len(paths))
	for _, path := range paths {
		b, err := loadBooster(fs, root, path, meta)
		if err != nil {
			return nil, err
		}
		boosters = append(boosters, b)
	}

	return New(boosters...), nil
}

func loadMetadata(fs billy.Filesystem, path string) (*metadataDocument, error) {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &metadataDocument{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc metadataDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &doc, nil
}

func loadBooster(fs billy.Filesystem, root, path string, meta *metadataDocument) (*Booster, error) {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc boosterDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")

	missionID, runtimeID, version := doc.Mission, doc.Runtime, doc.Version
	if missionID == "" && len(parts) > 0 {
		missionID = parts[0]
	}
	if runtimeID == "" && len(parts) > 1 {
		runtimeID = parts[1]
	}
	if version == "" && len(parts) > 2 {
		version = parts[2]
	}
	if missionID == "" || missionID == "." || missionID == ".." || runtimeID == "" {
		return nil, fmt.Errorf("booster %s must live under <mission>/<runtime>", path)
	}

	name := doc.Name
	if name == "" {
		name = missionID + "-" + runtimeID
	}

	return &Booster{
		Name:        name,
		Description: doc.Description,
		Mission:     meta.mission(missionID),
		Runtime:     meta.runtime(runtimeID),
		Version:     version,
		Source: BoosterSource{
			GitRepo: doc.Source.Git.URL,
			GitRef:  doc.Source.Git.Ref,
			Path:    doc.Source.Path,
		},
		Metadata: doc.Metadata,
	}, nil
}

func (d *metadataDocument) mission(id string) Mission {
	for _, m := range d.Missions {
		if m.ID == id {
			return m
		}
	}
	return Mission{ID: id, Name: id}
}

func (d *metadataDocument) runtime(id string) Runtime {
	for _, r := range d.Runtimes {
		if r.ID == id {
			return r
		}
	}
	return Runtime{ID: id, Name: id}
}
