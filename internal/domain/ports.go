package domain

// Workspace is one acquired extraction root. Release removes the backing
// directory and is safe to call via defer regardless of outcome.
type Workspace interface {
	Root() string
	Release() error
}

// WorkspaceManager extracts archives into disposable workspaces.
type WorkspaceManager interface {
	Acquire(zipPath, analysisID string) (Workspace, error)
}

// LanguageClassifier produces a file-count histogram per detected language
// for every regular file under root.
type LanguageClassifier interface {
	Classify(root string) (map[string]int, error)
}

// ManifestScanner locates and parses action manifests under root.
type ManifestScanner interface {
	Scan(root string) ([]ManifestInfo, error)
}

// DependencyCollector gathers dependency declarations across ecosystems.
type DependencyCollector interface {
	Collect(root string) (DependencySet, error)
}

// EndpointHarvester extracts candidate network endpoints from source files.
type EndpointHarvester interface {
	Harvest(root string) ([]string, error)
}

// CommitReader reads version-control metadata from an extracted tree.
type CommitReader interface {
	Head(root string) (string, error)
}

// RecordStore persists and retrieves knowledge records.
type RecordStore interface {
	Add(record *AnalysisRecord) error
	QueryByType(t ManifestType) ([]AnalysisRecord, error)
	All() ([]AnalysisRecord, error)
}

// CodeGenerator renders a source stub from one knowledge record.
type CodeGenerator interface {
	Generate(record *AnalysisRecord) (string, error)
}
