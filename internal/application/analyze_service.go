package application

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/repolens/repolens/internal/domain"
)

// AnalyzeService orchestrates one analysis run:
// acquire workspace → {manifests, languages, dependencies, endpoints} →
// assemble record → release workspace.
//
// The four extraction passes read the same tree and share no state; only
// archive-level failures abort the run. The workspace is released
// unconditionally once acquired.
type AnalyzeService struct {
	workspaces domain.WorkspaceManager
	manifests  domain.ManifestScanner
	languages  domain.LanguageClassifier
	deps       domain.DependencyCollector
	endpoints  domain.EndpointHarvester
	commits    domain.CommitReader
}

func NewAnalyzeService(
	workspaces domain.WorkspaceManager,
	manifests domain.ManifestScanner,
	languages domain.LanguageClassifier,
	deps domain.DependencyCollector,
	endpoints domain.EndpointHarvester,
	commits domain.CommitReader,
) *AnalyzeService {
	return &AnalyzeService{
		workspaces: workspaces,
		manifests:  manifests,
		languages:  languages,
		deps:       deps,
		endpoints:  endpoints,
		commits:    commits,
	}
}

// Analyze extracts the archive and assembles its knowledge record. The
// analysisID must be unique per run; it keys the disposable workspace.
func (s *AnalyzeService) Analyze(zipPath, analysisID string) (*domain.AnalysisRecord, error) {
	ws, err := s.workspaces.Acquire(zipPath, analysisID)
	if err != nil {
		return nil, fmt.Errorf("acquiring workspace: %w", err)
	}
	defer ws.Release()

	root := ws.Root()

	manifests, err := s.manifests.Scan(root)
	if err != nil {
		return nil, fmt.Errorf("scanning manifests: %w", err)
	}
	if manifests == nil {
		manifests = []domain.ManifestInfo{}
	}

	languages, err := s.languages.Classify(root)
	if err != nil {
		return nil, fmt.Errorf("classifying languages: %w", err)
	}

	deps, err := s.deps.Collect(root)
	if err != nil {
		return nil, fmt.Errorf("collecting dependencies: %w", err)
	}

	urls, err := s.endpoints.Harvest(root)
	if err != nil {
		return nil, fmt.Errorf("harvesting endpoints: %w", err)
	}
	if urls == nil {
		urls = []string{}
	}

	record := &domain.AnalysisRecord{
		AnalysisID:      analysisID,
		SourceZip:       filepath.Base(zipPath),
		ActionManifests: manifests,
		Languages:       languages,
		Dependencies:    deps,
		APIEndpoints:    urls,
		AnalyzedAt:      time.Now().UTC(),
	}

	// Best-effort: archives of checked-out repositories carry a HEAD.
	if s.commits != nil {
		if hash, err := s.commits.Head(root); err == nil {
			record.CommitHash = hash
		}
	}

	return record, nil
}

// NewAnalysisID derives a run identifier from the archive name and a
// timestamp, matching the workspace-uniqueness requirement.
func NewAnalysisID(zipPath string, now time.Time) string {
	stem := filepath.Base(zipPath)
	if ext := filepath.Ext(stem); ext != "" {
		stem = stem[:len(stem)-len(ext)]
	}
	return fmt.Sprintf("%s_%s", stem, now.Format("20060102150405"))
}
