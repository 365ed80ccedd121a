package depscan

import (
	"encoding/json"
	"os"

	"github.com/repolens/repolens/internal/domain"
)

// parsePackageJSON extracts the well-known fields of a package.json.
// A file that cannot be read or decoded yields a descriptor carrying only
// its path, as if the manifest were an empty object.
func parsePackageJSON(path, rel string) domain.NodePackage {
	pkg := domain.NodePackage{Path: rel}

	data, err := os.ReadFile(path)
	if err != nil {
		return pkg
	}

	var doc struct {
		Name            string            `json:"name"`
		Version         string            `json:"version"`
		Description     string            `json:"description"`
		Main            string            `json:"main"`
		Scripts         map[string]string `json:"scripts"`
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
		Engines         map[string]string `json:"engines"`
		Type            string            `json:"type"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return pkg
	}

	pkg.Name = doc.Name
	pkg.Version = doc.Version
	pkg.Description = doc.Description
	pkg.Main = doc.Main
	pkg.Scripts = doc.Scripts
	pkg.Dependencies = doc.Dependencies
	pkg.DevDependencies = doc.DevDependencies
	pkg.Engines = doc.Engines
	pkg.Type = doc.Type
	return pkg
}
