package depscan

import (
	"bufio"
	"os"
	"strings"

	"github.com/repolens/repolens/internal/domain"
)

// parseGoMod reads a go.mod with a line-oriented grammar: the module
// directive, the go version directive, and require statements both in
// block form and single-line form. Requirements keep encounter order.
func parseGoMod(path, rel string) domain.GoModule {
	mod := domain.GoModule{Path: rel}

	f, err := os.Open(path)
	if err != nil {
		return mod
	}
	defer f.Close()

	inBlock := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, "module "):
			if fields := strings.Fields(line); len(fields) >= 2 {
				mod.Module = fields[1]
			}
		case strings.HasPrefix(line, "go "):
			if fields := strings.Fields(line); len(fields) >= 2 {
				mod.GoVersion = fields[1]
			}
		case strings.HasPrefix(line, "require ("):
			inBlock = true
		case line == ")":
			inBlock = false
		case strings.HasPrefix(line, "require "):
			if fields := strings.Fields(line); len(fields) >= 3 {
				mod.Requires = append(mod.Requires, domain.GoRequirement{Name: fields[1], Version: fields[2]})
			}
		case inBlock && line != "" && !strings.HasPrefix(line, "//"):
			if fields := strings.Fields(line); len(fields) >= 2 {
				mod.Requires = append(mod.Requires, domain.GoRequirement{Name: fields[0], Version: fields[1]})
			}
		}
	}
	return mod
}
