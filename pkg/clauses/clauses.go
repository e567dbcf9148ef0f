// Package clauses loads the legal clauses printed under the contract body.
// Clause bodies may carry light markup; HTML output keeps a safe subset and
// PDF or text output strips every tag.
package clauses

import (
	"embed"
	"encoding/json"
	"fmt"
	"html"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// Clause is a titled paragraph of the rental conditions.
type Clause struct {
	ID    string `json:"id" yaml:"id"`
	Order int    `json:"order" yaml:"order"`
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

type documentFile struct {
	Clauses []Clause `json:"clauses" yaml:"clauses"`
}

// Defaults returns the built-in rental conditions.
func Defaults() ([]Clause, error) {
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		return nil, fmt.Errorf("clauses: defaults: %w", err)
	}
	return LoadFS(sub)
}

// Load reads clauses from a file or a directory of JSON/YAML files.
func Load(path string) ([]Clause, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("clauses: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadFS(os.DirFS(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("clauses: read %s: %w", path, err)
	}
	doc, err := parseDocument(data, path)
	if err != nil {
		return nil, err
	}
	return normalise(doc.Clauses, path)
}

// LoadFS walks fsys and merges the clauses of every JSON/YAML file. Clause
// ids must be unique across files. The result is sorted by Order then ID.
func LoadFS(fsys fs.FS) ([]Clause, error) {
	if fsys == nil {
		return nil, nil
	}

	var (
		out  []Clause
		seen = make(map[string]string)
	)
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isClauseFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("clauses: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		clauses, err := normalise(doc.Clauses, path)
		if err != nil {
			return err
		}
		for _, clause := range clauses {
			if previous, exists := seen[clause.ID]; exists {
				return fmt.Errorf("clauses: duplicate clause %q (files %s and %s)", clause.ID, previous, path)
			}
			seen[clause.ID] = path
			out = append(out, clause)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortClauses(out)
	return out, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("clauses: file %s is empty", source)
	}
	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("clauses: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("clauses: parse %s: %w", source, err)
	}
	return doc, nil
}

func normalise(in []Clause, source string) ([]Clause, error) {
	out := make([]Clause, 0, len(in))
	for i, clause := range in {
		clause.ID = strings.TrimSpace(clause.ID)
		clause.Title = strings.TrimSpace(clause.Title)
		clause.Body = strings.TrimSpace(clause.Body)
		if clause.ID == "" {
			return nil, fmt.Errorf("clauses: file %s clause #%d has no id", source, i+1)
		}
		if clause.Body == "" {
			return nil, fmt.Errorf("clauses: file %s clause %q has no body", source, clause.ID)
		}
		out = append(out, clause)
	}
	sortClauses(out)
	return out, nil
}

func sortClauses(clauses []Clause) {
	sort.SliceStable(clauses, func(i, j int) bool {
		if clauses[i].Order != clauses[j].Order {
			return clauses[i].Order < clauses[j].Order
		}
		return clauses[i].ID < clauses[j].ID
	})
}

func isClauseFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

var (
	htmlPolicyOnce  sync.Once
	htmlPolicy      *bluemonday.Policy
	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

// HTML returns the clause body restricted to user-generated-content markup.
func (c Clause) HTML() string {
	htmlPolicyOnce.Do(func() {
		htmlPolicy = bluemonday.UGCPolicy()
	})
	return strings.TrimSpace(htmlPolicy.Sanitize(c.Body))
}

// Text returns the clause body with every tag removed and entities decoded.
func (c Clause) Text() string {
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	stripped := html.UnescapeString(plainPolicy.Sanitize(c.Body))
	return strings.Join(strings.Fields(stripped), " ")
}
