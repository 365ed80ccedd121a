// Package depscan collects dependency declarations from every ecosystem
// marker file in a tree: package.json, go.mod, requirements.txt and
// Dockerfile. A malformed file degrades into an empty descriptor for that
// file; it never aborts collection elsewhere.
package depscan

import (
	"io/fs"
	"path/filepath"

	"github.com/repolens/repolens/internal/domain"
)

// Collector implements domain.DependencyCollector.
type Collector struct{}

func New() *Collector {
	return &Collector{}
}

// Collect walks the tree once and dispatches each marker file to its
// ecosystem parser. Walk order is lexical, so results are deterministic
// for identical trees.
func (c *Collector) Collect(root string) (domain.DependencySet, error) {
	var set domain.DependencySet

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		switch d.Name() {
		case "package.json":
			set.Node = append(set.Node, parsePackageJSON(path, rel))
		case "go.mod":
			set.Go = append(set.Go, parseGoMod(path, rel))
		case "requirements.txt":
			set.Python = append(set.Python, parseRequirements(path, rel))
		case "Dockerfile":
			set.Docker = append(set.Docker, parseDockerfile(path, rel))
		}
		return nil
	})
	if err != nil {
		return domain.DependencySet{}, err
	}
	return set, nil
}
