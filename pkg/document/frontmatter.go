package document

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the decoded YAML front-matter block of a document.
type FrontMatter struct {
	raw    string
	fields map[string]interface{}
}

// Get returns the decoded value for key.
func (f FrontMatter) Get(key string) (interface{}, bool) {
	v, ok := f.fields[key]
	return v, ok
}

// Raw returns the undecoded front-matter text without the fences.
func (f FrontMatter) Raw() string {
	return f.raw
}

func decodeFrontMatter(lines []string) (FrontMatter, error) {
	raw := strings.Join(lines, "\n")
	fm := FrontMatter{raw: raw}

	if strings.TrimSpace(raw) == "" {
		return fm, nil
	}

	fields := make(map[string]interface{})
	if err := yaml.Unmarshal([]byte(raw), &fields); err != nil {
		return fm, fmt.Errorf("failed to decode front matter: %w", err)
	}

	fm.fields = fields
	return fm, nil
}

// Autogenerated reports whether front matter marks this document as produced
// by a pipeline. Pipelines set either a bare boolean or the generator name
// (e.g. "rest", "crawler"), so any value other than false, an empty string,
// or the string "false" counts.
func (d *Document) Autogenerated() bool {
	v, ok := d.FrontMatter.Get("autogenerated")
	if !ok || v == nil {
		return false
	}

	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != "" && !strings.EqualFold(t, "false")
	default:
		return true
	}
}
