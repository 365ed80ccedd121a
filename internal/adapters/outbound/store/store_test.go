package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/adapters/outbound/store"
	"github.com/repolens/repolens/internal/domain"
)

func record(id string, types ...domain.ManifestType) *domain.AnalysisRecord {
	rec := &domain.AnalysisRecord{
		AnalysisID: id,
		SourceZip:  id + ".zip",
		Languages:  map[string]int{"Go": 1},
	}
	for i, t := range types {
		rec.ActionManifests = append(rec.ActionManifests, domain.ManifestInfo{
			Path: "action.yml",
			Name: "Action " + string(rune('A'+i)),
			Type: t,
		})
	}
	return rec
}

func TestStore_AddAndAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	kb := store.New(path)

	require.NoError(t, kb.Add(record("run1", domain.ManifestDocker)))
	require.NoError(t, kb.Add(record("run2", domain.ManifestNode)))

	records, err := kb.All()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "run1", records[0].AnalysisID)
	assert.Equal(t, "run2", records[1].AnalysisID)
}

func TestStore_AddRejectsMissingAnalysisID(t *testing.T) {
	kb := store.New(filepath.Join(t.TempDir(), "kb.json"))

	err := kb.Add(&domain.AnalysisRecord{SourceZip: "x.zip"})
	assert.ErrorIs(t, err, domain.ErrMissingAnalysisID)

	records, err := kb.All()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_QueryByType(t *testing.T) {
	kb := store.New(filepath.Join(t.TempDir(), "kb.json"))
	require.NoError(t, kb.Add(record("docker-run", domain.ManifestDocker)))
	require.NoError(t, kb.Add(record("mixed-run", domain.ManifestNode, domain.ManifestDocker)))
	require.NoError(t, kb.Add(record("node-run", domain.ManifestNode)))
	require.NoError(t, kb.Add(record("bare-run")))

	dockers, err := kb.QueryByType(domain.ManifestDocker)
	require.NoError(t, err)
	require.Len(t, dockers, 2)
	assert.Equal(t, "docker-run", dockers[0].AnalysisID)
	assert.Equal(t, "mixed-run", dockers[1].AnalysisID)

	composites, err := kb.QueryByType(domain.ManifestComposite)
	require.NoError(t, err)
	assert.Empty(t, composites)
}

func TestStore_AllOnMissingFile(t *testing.T) {
	kb := store.New(filepath.Join(t.TempDir(), "missing", "kb.json"))

	records, err := kb.All()
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestStore_AddCreatesParentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deep", "kb.json")
	kb := store.New(path)

	require.NoError(t, kb.Add(record("run1", domain.ManifestUnknown)))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestStore_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := store.New(path).All()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decoding knowledge base")
}
