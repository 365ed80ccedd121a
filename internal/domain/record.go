package domain

import "time"

// ManifestType classifies how a CI/CD action manifest executes.
type ManifestType string

const (
	ManifestDocker    ManifestType = "docker"
	ManifestNode      ManifestType = "node"
	ManifestComposite ManifestType = "composite"
	ManifestUnknown   ManifestType = "unknown"
)

// ManifestTypes lists every valid classification, for flag validation.
var ManifestTypes = []ManifestType{ManifestDocker, ManifestNode, ManifestComposite, ManifestUnknown}

// ValidManifestType reports whether s names a known classification.
func ValidManifestType(s string) bool {
	for _, t := range ManifestTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// ManifestInfo describes one discovered action manifest. A manifest that
// failed to parse still appears in the record, carrying only its path and
// the Error field.
type ManifestInfo struct {
	Path        string       `json:"path"`
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
	Type        ManifestType `json:"type,omitempty"`
	Inputs      []string     `json:"inputs,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// NodePackage is the parsed shape of one package.json. A file that failed
// to decode keeps its path and leaves every other field zero.
type NodePackage struct {
	Path            string            `json:"path"`
	Name            string            `json:"name,omitempty"`
	Version         string            `json:"version,omitempty"`
	Description     string            `json:"description,omitempty"`
	Main            string            `json:"main,omitempty"`
	Scripts         map[string]string `json:"scripts,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
	Engines         map[string]string `json:"engines,omitempty"`
	Type            string            `json:"type,omitempty"`
}

// GoRequirement is one (module, version) pair from a go.mod require
// statement, in encounter order.
type GoRequirement struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// GoModule is the parsed shape of one go.mod file.
type GoModule struct {
	Path      string          `json:"path"`
	Module    string          `json:"module,omitempty"`
	GoVersion string          `json:"go,omitempty"`
	Requires  []GoRequirement `json:"requires,omitempty"`
}

// PythonRequirements holds the raw requirement lines of one
// requirements.txt, comments and blanks excluded, in file order.
type PythonRequirements struct {
	Path         string   `json:"path"`
	Requirements []string `json:"requirements"`
}

// DockerImage is the parsed shape of one Dockerfile. From keeps every FROM
// line (multi-stage builds), Runs every RUN line; the scalar instructions
// keep their last occurrence.
type DockerImage struct {
	Path       string   `json:"path"`
	From       []string `json:"from"`
	Workdir    string   `json:"workdir,omitempty"`
	Entrypoint string   `json:"entrypoint,omitempty"`
	Cmd        string   `json:"cmd,omitempty"`
	Runs       []string `json:"runs,omitempty"`
}

// DependencySet aggregates dependency declarations per ecosystem. An
// ecosystem with no marker files in the tree is omitted from the JSON
// document entirely.
type DependencySet struct {
	Node   []NodePackage        `json:"node,omitempty"`
	Go     []GoModule           `json:"go,omitempty"`
	Python []PythonRequirements `json:"python,omitempty"`
	Docker []DockerImage        `json:"docker,omitempty"`
}

// Empty reports whether no ecosystem produced any entry.
func (d DependencySet) Empty() bool {
	return len(d.Node) == 0 && len(d.Go) == 0 && len(d.Python) == 0 && len(d.Docker) == 0
}

// AnalysisRecord is the knowledge record produced by one analysis run.
// It is assembled once by the analysis service and immutable afterwards.
type AnalysisRecord struct {
	AnalysisID      string         `json:"analysis_id"`
	SourceZip       string         `json:"source_zip"`
	ActionManifests []ManifestInfo `json:"action_manifests"`
	Languages       map[string]int `json:"languages"`
	Dependencies    DependencySet  `json:"dependencies"`
	APIEndpoints    []string       `json:"api_endpoints"`
	CommitHash      string         `json:"commit_hash,omitempty"`
	AnalyzedAt      time.Time      `json:"analyzed_at"`
}

// FirstManifest returns the first discovered manifest, or a zero value when
// the archive contained none.
func (r *AnalysisRecord) FirstManifest() ManifestInfo {
	if len(r.ActionManifests) == 0 {
		return ManifestInfo{}
	}
	return r.ActionManifests[0]
}

// HasManifestType reports whether any manifest in the record carries the
// given classification.
func (r *AnalysisRecord) HasManifestType(t ManifestType) bool {
	for _, m := range r.ActionManifests {
		if m.Type == t {
			return true
		}
	}
	return false
}
