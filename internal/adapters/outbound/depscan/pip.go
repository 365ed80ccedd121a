package depscan

import (
	"bufio"
	"os"
	"strings"

	"github.com/repolens/repolens/internal/domain"
)

// parseRequirements keeps every non-blank, non-comment line of a
// requirements.txt verbatim, in file order.
func parseRequirements(path, rel string) domain.PythonRequirements {
	reqs := domain.PythonRequirements{Path: rel, Requirements: []string{}}

	f, err := os.Open(path)
	if err != nil {
		return reqs
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		reqs.Requirements = append(reqs.Requirements, line)
	}
	return reqs
}
