package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/repolens/repolens/internal/domain"
)

// ciConfigDir is reserved for workflow configuration; action manifests
// under it are not standalone actions.
const ciConfigDir = ".github"

// Scanner implements domain.ManifestScanner: it locates action.yml and
// action.yaml files and parses each into a ManifestInfo. A manifest that
// fails to parse is recorded with its path and an error message instead of
// aborting the scan.
type Scanner struct{}

func New() *Scanner {
	return &Scanner{}
}

func (s *Scanner) Scan(root string) ([]domain.ManifestInfo, error) {
	var infos []domain.ManifestInfo

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ciConfigDir {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != "action.yml" && d.Name() != "action.yaml" {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		infos = append(infos, parse(path, filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return infos, nil
}

// actionDoc keeps inputs and runs as raw nodes: inputs to preserve the
// declared key order, runs because a non-mapping runs section still
// classifies as unknown rather than failing the manifest.
type actionDoc struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Inputs      yaml.Node `yaml:"inputs"`
	Runs        yaml.Node `yaml:"runs"`
}

func parse(path, rel string) domain.ManifestInfo {
	data, err := os.ReadFile(path)
	if err != nil {
		return degraded(rel, err)
	}

	var doc actionDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return degraded(rel, err)
	}

	using, hasImage := runsFields(&doc.Runs)

	return domain.ManifestInfo{
		Path:        rel,
		Name:        doc.Name,
		Description: doc.Description,
		Type:        domain.ClassifyManifest(using, hasImage),
		Inputs:      mappingKeys(&doc.Inputs),
	}
}

func degraded(rel string, err error) domain.ManifestInfo {
	return domain.ManifestInfo{
		Path:  rel,
		Error: fmt.Sprintf("failed to parse: %v", err),
	}
}

// runsFields pulls the "using" scalar and "image" presence out of a runs
// mapping. Anything that is not a mapping yields no fields.
func runsFields(runs *yaml.Node) (using string, hasImage bool) {
	if runs.Kind != yaml.MappingNode {
		return "", false
	}
	for i := 0; i+1 < len(runs.Content); i += 2 {
		key, val := runs.Content[i], runs.Content[i+1]
		switch key.Value {
		case "using":
			if val.Kind == yaml.ScalarNode {
				using = val.Value
			}
		case "image":
			if val.Kind == yaml.ScalarNode && val.Value != "" {
				hasImage = true
			}
		}
	}
	return using, hasImage
}

// mappingKeys returns the keys of a mapping node in document order.
func mappingKeys(n *yaml.Node) []string {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keys = append(keys, n.Content[i].Value)
	}
	return keys
}
