package depscan

import (
	"bufio"
	"os"
	"strings"

	"github.com/repolens/repolens/internal/domain"
)

// parseDockerfile matches instruction keywords case-insensitively.
// FROM and RUN append in source order; WORKDIR, ENTRYPOINT and CMD keep
// the last occurrence. Anything else is ignored.
func parseDockerfile(path, rel string) domain.DockerImage {
	img := domain.DockerImage{Path: rel, From: []string{}}

	f, err := os.Open(path)
	if err != nil {
		return img
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "FROM "):
			img.From = append(img.From, instructionValue(line))
		case strings.HasPrefix(upper, "WORKDIR "):
			img.Workdir = instructionValue(line)
		case strings.HasPrefix(upper, "ENTRYPOINT"):
			img.Entrypoint = instructionValue(line)
		case strings.HasPrefix(upper, "CMD"):
			img.Cmd = instructionValue(line)
		case strings.HasPrefix(upper, "RUN "):
			img.Runs = append(img.Runs, instructionValue(line))
		}
	}
	return img
}

// instructionValue strips the leading keyword from an instruction line.
// A bare keyword with no arguments yields the empty string.
func instructionValue(line string) string {
	_, rest, found := strings.Cut(line, " ")
	if !found {
		return ""
	}
	return strings.TrimSpace(rest)
}
