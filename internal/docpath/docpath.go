// Package docpath extracts values from parsed documents by dotted path.
// Segments index maps by key and arrays by base-10 position, so `a.b.2`
// reads key "a", then "b", then element 2. Keys containing a literal dot
// cannot be addressed; the ambiguity is inherent to the path syntax.
package docpath

import (
	"strconv"
	"strings"

	"github.com/ohler55/ojg/oj"

	"github.com/vk/preconfig/internal/docview"
	"github.com/vk/preconfig/internal/errs"
)

// FromStructured walks data along path and renders the hit as a string:
// strings verbatim, scalars in their JSON form, containers JSON-serialized.
// A miss (absent key, bad index, null, or a scalar mid-path) reports
// ok=false.
func FromStructured(data any, path string) (string, bool, error) {
	cur := data
	if path != "" {
		for _, segment := range strings.Split(path, ".") {
			next, ok := step(cur, segment)
			if !ok {
				return "", false, nil
			}
			cur = next
		}
	}
	return render(cur)
}

// FromDocument resolves path against a parsed document. Multi-document
// streams are addressed by a leading zero-based document index. Text
// documents have no structure to look into; callers decide how to report
// that.
func FromDocument(doc *docview.Document, path string) (string, bool, error) {
	switch doc.Kind {
	case docview.Multi:
		return FromStructured([]any(doc.Docs), path)
	case docview.JSON, docview.YAML:
		return FromStructured(doc.Data, path)
	default:
		return "", false, errs.Implementationf("cannot extract path %q from a text document", path)
	}
}

// FromRaw extracts path from unparsed content. An empty path returns the
// content untouched; otherwise the content must be interpretable as
// structured data.
func FromRaw(content, path string) (string, bool, error) {
	if path == "" {
		return content, true, nil
	}
	doc := docview.Parse(content)
	if doc.Kind == docview.Text {
		return "", false, errs.Syntaxf("cannot resolve a path for a non-json/yaml content")
	}
	return FromDocument(doc, path)
}

func step(cur any, segment string) (any, bool) {
	switch v := cur.(type) {
	case map[string]any:
		next, ok := v[segment]
		return next, ok
	case []any:
		idx, err := strconv.Atoi(segment)
		if err != nil || idx < 0 || idx >= len(v) {
			return nil, false
		}
		return v[idx], true
	default:
		return nil, false
	}
}

func render(v any) (string, bool, error) {
	switch hit := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return hit, true, nil
	default:
		return oj.JSON(hit), true, nil
	}
}
