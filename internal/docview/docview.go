// Package docview interprets template text as structured data for `self:`
// lookups. Parsers are tried in a fixed order (JSON, single-document YAML,
// multi-document YAML) and the first that produces a container wins;
// anything else is plain text. Parsing never fails.
package docview

import (
	"errors"
	"io"
	"strings"

	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"
)

// Kind tags the interpretation of a document.
type Kind int

const (
	Text Kind = iota
	JSON
	YAML
	Multi
)

func (k Kind) String() string {
	switch k {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case Multi:
		return "multi"
	default:
		return "text"
	}
}

// Document is a template interpreted as structured data. Data is set for
// JSON and YAML kinds, Docs for Multi, and neither for Text.
type Document struct {
	Kind Kind
	Text string
	Data any
	Docs []any
}

// Parse interprets text as JSON, then single-document YAML, then
// multi-document YAML, and finally plain text. Only container roots (maps
// and arrays) are accepted for JSON and single YAML; primitive roots fall
// through.
func Parse(text string) *Document {
	if data, err := oj.ParseString(text); err == nil && isContainer(data) {
		return &Document{Kind: JSON, Text: text, Data: data}
	}

	if docs, ok := parseYAML(text); ok {
		if len(docs) == 1 {
			if isContainer(docs[0]) {
				return &Document{Kind: YAML, Text: text, Data: docs[0]}
			}
		} else if len(docs) > 1 {
			return &Document{Kind: Multi, Text: text, Docs: docs}
		}
	}

	return &Document{Kind: Text, Text: text}
}

// parseYAML decodes every document in the stream. It reports failure when
// any document is malformed so the caller falls through to plain text.
func parseYAML(text string) ([]any, bool) {
	dec := yaml.NewDecoder(strings.NewReader(text))
	var docs []any
	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, false
		}
		docs = append(docs, doc)
	}
	return docs, len(docs) > 0
}

func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}
