// Package format re-renders resolved template text as JSON or YAML. It is a
// post-processing step for the CLI; the resolution engine itself never
// reformats anything.
package format

import (
	"strings"

	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"

	"github.com/vk/preconfig/internal/docview"
	"github.com/vk/preconfig/internal/errs"
)

// Targets accepted by Format.
const (
	Text = "text"
	JSON = "json"
	YAML = "yaml"
)

// Valid reports whether to names a supported output format.
func Valid(to string) bool {
	return to == Text || to == JSON || to == YAML
}

// Format renders text in the requested output format. Text is the identity.
// JSON and YAML require the input to be structured; a plain-text document
// cannot be re-rendered.
func Format(text, to string) (string, error) {
	if to == Text {
		return text, nil
	}
	if !Valid(to) {
		return "", errs.Validationf("unknown output format %q: expected text, json or yaml", to)
	}

	doc := docview.Parse(text)
	if doc.Kind == docview.Text {
		return "", errs.Validationf("cannot format plain text content as %s", to)
	}

	if to == JSON {
		if doc.Kind == docview.Multi {
			return oj.JSON(doc.Docs, 2), nil
		}
		return oj.JSON(doc.Data, 2), nil
	}
	return toYAML(doc)
}

func toYAML(doc *docview.Document) (string, error) {
	if doc.Kind != docview.Multi {
		out, err := yaml.Marshal(doc.Data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}

	parts := make([]string, 0, len(doc.Docs))
	for _, d := range doc.Docs {
		out, err := yaml.Marshal(d)
		if err != nil {
			return "", err
		}
		parts = append(parts, string(out))
	}
	return strings.Join(parts, "---\n"), nil
}
