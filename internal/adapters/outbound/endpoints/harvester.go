package endpoints

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// urlPattern matches scheme://host/path shapes: the host needs at least
// one dot and a 2+ character top-level segment, the path stops at
// whitespace and quote characters.
var urlPattern = regexp.MustCompile("https?://[a-zA-Z0-9.-]+\\.[a-zA-Z]{2,}(?:/[^\\s'\"`]*)?")

// scanExts restricts the harvest to scripting and source files.
var scanExts = map[string]bool{
	".js": true,
	".py": true,
	".ts": true,
	".sh": true,
}

// noiseSubstrings excludes known non-endpoint matches: references to the
// action schema definition and to the hosting platform itself.
var noiseSubstrings = []string{
	"schema.json",
	"github.com",
}

// Harvester implements domain.EndpointHarvester.
type Harvester struct{}

func New() *Harvester {
	return &Harvester{}
}

// Harvest scans eligible files under root for URL-shaped substrings and
// returns the deduplicated, sorted survivors. File contents are treated as
// raw bytes, so binary or non-UTF8 files cannot abort the scan.
func (h *Harvester) Harvest(root string) ([]string, error) {
	seen := make(map[string]bool)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !scanExts[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil // unreadable files contribute nothing
		}
		// Lossy decode: invalid UTF-8 bytes are dropped so they can
		// neither abort the scan nor glue themselves onto a match.
		content := strings.ToValidUTF8(string(data), "")
		for _, url := range urlPattern.FindAllString(content, -1) {
			if isNoise(url) {
				continue
			}
			seen[url] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(seen))
	for url := range seen {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls, nil
}

func isNoise(url string) bool {
	for _, s := range noiseSubstrings {
		if strings.Contains(url, s) {
			return true
		}
	}
	return false
}
