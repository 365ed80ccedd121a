package langscan

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// languageByExt maps file extensions (lowercased) to language labels.
var languageByExt = map[string]string{
	".go":   "Go",
	".js":   "JavaScript",
	".ts":   "TypeScript",
	".py":   "Python",
	".sh":   "Shell",
	".bash": "Shell",
	".ps1":  "PowerShell",
	".yml":  "YAML",
	".yaml": "YAML",
	".json": "JSON",
	".md":   "Markdown",
}

// otherLabel buckets files whose extension is not in the table.
const otherLabel = "Other"

// Classifier implements domain.LanguageClassifier with a static extension
// table. It never reads file contents.
type Classifier struct{}

func New() *Classifier {
	return &Classifier{}
}

// Classify walks every regular file under root and counts it under exactly
// one label. A file literally named Dockerfile gets its own label.
func (c *Classifier) Classify(root string) (map[string]int, error) {
	counts := make(map[string]int)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		counts[Label(d.Name())]++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// Label maps one file name to its language label.
func Label(name string) string {
	if name == "Dockerfile" {
		return "Dockerfile"
	}
	if lang, ok := languageByExt[strings.ToLower(filepath.Ext(name))]; ok {
		return lang
	}
	return otherLabel
}
