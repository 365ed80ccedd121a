package codegen

import (
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/fatih/camelcase"

	"github.com/repolens/repolens/internal/domain"
)

// Synthesizer implements domain.CodeGenerator with a fixed textual
// template. It reads only the first manifest's name, the language mapping
// and the endpoint list; it performs no parsing of its own.
type Synthesizer struct{}

func New() *Synthesizer {
	return &Synthesizer{}
}

var stubTemplate = template.Must(template.New("stub").Parse(
	`// Code generated from analysis {{.AnalysisID}}. DO NOT EDIT.
package generated

import "fmt"

// Summarize{{.Ident}} prints the knowledge record captured for {{.ActionName}}.
func Summarize{{.Ident}}() {
	fmt.Println("analysis: {{.AnalysisID}}")
	fmt.Println("detected languages:")
{{- range .Languages}}
	fmt.Println("  - {{.Name}}: {{.Count}} files")
{{- end}}
	fmt.Println("api endpoints:")
{{- range .Endpoints}}
	fmt.Println("  - {{.}}")
{{- end}}
}
`))

type stubData struct {
	AnalysisID string
	ActionName string
	Ident      string
	Languages  []languageCount
	Endpoints  []string
}

type languageCount struct {
	Name  string
	Count int
}

// Generate renders the summary stub for one record. Output is
// deterministic: languages are sorted by label.
func (s *Synthesizer) Generate(record *domain.AnalysisRecord) (string, error) {
	name := record.FirstManifest().Name
	if name == "" {
		name = "UnknownAction"
	}

	data := stubData{
		AnalysisID: record.AnalysisID,
		ActionName: name,
		Ident:      Identifier(name),
		Languages:  sortedLanguages(record.Languages),
		Endpoints:  record.APIEndpoints,
	}

	var buf strings.Builder
	if err := stubTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering stub: %w", err)
	}
	return buf.String(), nil
}

// Identifier turns an action name into an exported Go identifier:
// "docker build-push v2" becomes "DockerBuildPushV2".
func Identifier(name string) string {
	var words []string
	for _, field := range strings.FieldsFunc(name, func(r rune) bool {
		return !isAlnum(r)
	}) {
		words = append(words, camelcase.Split(field)...)
	}
	if len(words) == 0 {
		return "UnknownAction"
	}

	var b strings.Builder
	for _, w := range words {
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(w[1:])
	}
	return b.String()
}

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

func sortedLanguages(langs map[string]int) []languageCount {
	out := make([]languageCount, 0, len(langs))
	for name, count := range langs {
		out = append(out, languageCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
