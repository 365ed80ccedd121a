package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/repolens/repolens/internal/domain"
)

// Store is a file-backed implementation of domain.RecordStore: one JSON
// document holding every knowledge record ever added.
type Store struct {
	path string
}

// New creates a store backed by the given file path. The file is created
// on first Add.
func New(path string) *Store {
	return &Store{path: path}
}

// Add appends a record to the knowledge base. Records without an analysis
// identifier are rejected.
func (s *Store) Add(record *domain.AnalysisRecord) error {
	if record.AnalysisID == "" {
		return domain.ErrMissingAnalysisID
	}

	records, err := s.All()
	if err != nil {
		return err
	}
	records = append(records, *record)

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating store directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding knowledge base: %w", err)
	}
	return os.WriteFile(s.path, data, 0o644)
}

// QueryByType returns every record whose manifests contain at least one
// entry of the given type.
func (s *Store) QueryByType(t domain.ManifestType) ([]domain.AnalysisRecord, error) {
	records, err := s.All()
	if err != nil {
		return nil, err
	}

	var matches []domain.AnalysisRecord
	for _, r := range records {
		if r.HasManifestType(t) {
			matches = append(matches, r)
		}
	}
	return matches, nil
}

// All loads every stored record. A missing file is an empty knowledge
// base, not an error.
func (s *Store) All() ([]domain.AnalysisRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []domain.AnalysisRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding knowledge base: %w", err)
	}
	return records, nil
}
