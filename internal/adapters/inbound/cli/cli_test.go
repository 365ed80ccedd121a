package cli_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/adapters/inbound/cli"
)

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func fixtureZip(t *testing.T, dir string) string {
	t.Helper()
	zipPath := filepath.Join(dir, "svc.zip")
	writeZip(t, zipPath, map[string]string{
		"svc/action.yml": "name: Deploy Service\nruns:\n  using: docker\n",
		"svc/main.go":    "package main\n",
		"svc/app.py":     "API = 'https://api.example.com/v1'\n",
	})
	return zipPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	zipPath := fixtureZip(t, dir)
	storePath := filepath.Join(dir, "kb.json")
	outDir := filepath.Join(dir, "generated")

	out, err := run(t,
		"analyze", zipPath,
		"--base-dir", dir,
		"--store", storePath,
		"--out", outDir,
		"--id", "svc_test",
		"--json",
	)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &record), "output should be valid JSON")
	assert.Equal(t, "svc_test", record["analysis_id"])
	assert.Equal(t, "svc.zip", record["source_zip"])
	assert.Contains(t, record, "action_manifests")
	assert.Contains(t, record, "languages")
	assert.Contains(t, record, "dependencies")
	assert.Contains(t, record, "api_endpoints")

	// Side effects: record persisted, stub generated.
	_, statErr := os.Stat(storePath)
	assert.NoError(t, statErr)
	stub, readErr := os.ReadFile(filepath.Join(outDir, "generated_svc_test.go"))
	require.NoError(t, readErr)
	assert.Contains(t, string(stub), "SummarizeDeployService")
}

func TestAnalyzeCommand_HumanOutput(t *testing.T) {
	dir := t.TempDir()
	zipPath := fixtureZip(t, dir)

	out, err := run(t,
		"analyze", zipPath,
		"--base-dir", dir,
		"--store", filepath.Join(dir, "kb.json"),
		"--out", filepath.Join(dir, "generated"),
		"--id", "svc_test",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Deploy Service")
	assert.Contains(t, out, "https://api.example.com/v1")
}

func TestAnalyzeCommand_MissingArchive(t *testing.T) {
	_, err := run(t, "analyze", "/does/not/exist.zip")
	assert.Error(t, err)
}

func TestQueryCommand_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	zipPath := fixtureZip(t, dir)
	storePath := filepath.Join(dir, "kb.json")

	_, err := run(t,
		"analyze", zipPath,
		"--base-dir", dir,
		"--store", storePath,
		"--out", filepath.Join(dir, "generated"),
		"--id", "svc_test",
		"--json",
	)
	require.NoError(t, err)

	out, err := run(t, "query", "--type", "docker", "--store", storePath, "--json")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "svc_test", records[0]["analysis_id"])

	out, err = run(t, "query", "--type", "composite", "--store", storePath, "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Empty(t, records)
}

func TestQueryCommand_InvalidType(t *testing.T) {
	_, err := run(t, "query", "--type", "container")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "repolens")
}
