package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/repolens/repolens/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	info    = lipgloss.Color("#8B949E")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimStyle    = lipgloss.NewStyle().Foreground(dim)
	errStyle    = lipgloss.NewStyle().Foreground(danger)
	countStyle  = lipgloss.NewStyle().Foreground(info)

	typeColors = map[domain.ManifestType]lipgloss.Color{
		domain.ManifestDocker:    accent,
		domain.ManifestNode:      success,
		domain.ManifestComposite: info,
		domain.ManifestUnknown:   dim,
	}
)

// RenderRecord renders a human-readable summary of one knowledge record.
func RenderRecord(r *domain.AnalysisRecord) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Analysis %s", r.AnalysisID)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("source: %s", r.SourceZip)))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Action manifests"))
	b.WriteString("\n")
	if len(r.ActionManifests) == 0 {
		b.WriteString(dimStyle.Render("  (none)"))
		b.WriteString("\n")
	}
	for _, m := range r.ActionManifests {
		if m.Error != "" {
			b.WriteString(fmt.Sprintf("  %s %s\n", m.Path, errStyle.Render(m.Error)))
			continue
		}
		badge := lipgloss.NewStyle().Foreground(typeColors[m.Type]).Render(string(m.Type))
		name := m.Name
		if name == "" {
			name = m.Path
		}
		b.WriteString(fmt.Sprintf("  [%s] %s %s\n", badge, name, dimStyle.Render(m.Path)))
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("Languages"))
	b.WriteString("\n")
	for _, name := range sortedKeys(r.Languages) {
		b.WriteString(fmt.Sprintf("  %-12s %s\n", name, countStyle.Render(fmt.Sprintf("%d", r.Languages[name]))))
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("Dependencies"))
	b.WriteString("\n")
	b.WriteString(renderDepCounts(r.Dependencies))
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("API endpoints"))
	b.WriteString("\n")
	if len(r.APIEndpoints) == 0 {
		b.WriteString(dimStyle.Render("  (none)"))
		b.WriteString("\n")
	}
	for _, url := range r.APIEndpoints {
		b.WriteString("  " + url + "\n")
	}

	if r.CommitHash != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("commit: " + r.CommitHash))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderQueryResults lists records matching a manifest type query.
func RenderQueryResults(t domain.ManifestType, records []domain.AnalysisRecord) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Records with %q manifests", t)))
	b.WriteString("\n")
	if len(records) == 0 {
		b.WriteString(dimStyle.Render("  no results"))
		b.WriteString("\n")
		return b.String()
	}

	for _, r := range records {
		name := r.FirstManifest().Name
		if name == "" {
			name = "(unnamed)"
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", titleStyle.Render(name), dimStyle.Render("from "+r.SourceZip)))
	}
	return b.String()
}

func renderDepCounts(d domain.DependencySet) string {
	if d.Empty() {
		return dimStyle.Render("  (none)") + "\n"
	}

	var b strings.Builder
	write := func(eco string, n int) {
		if n > 0 {
			b.WriteString(fmt.Sprintf("  %-12s %s\n", eco, countStyle.Render(fmt.Sprintf("%d file(s)", n))))
		}
	}
	write("node", len(d.Node))
	write("go", len(d.Go))
	write("python", len(d.Python))
	write("docker", len(d.Docker))
	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
