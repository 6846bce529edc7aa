package docpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/preconfig/internal/docview"
	"github.com/vk/preconfig/internal/errs"
)

func TestFromStructured(t *testing.T) {
	data := map[string]any{
		"a": map[string]any{
			"b": []any{"zero", "one", map[string]any{"deep": true}},
		},
		"s": "str",
		"n": 3,
		"f": 1.5,
		"t": true,
		"o": map[string]any{"k": "v"},
	}

	testCases := []struct {
		name     string
		path     string
		expected string
		ok       bool
	}{
		{"string value", "s", "str", true},
		{"integer rendered canonically", "n", "3", true},
		{"float rendered canonically", "f", "1.5", true},
		{"bool rendered canonically", "t", "true", true},
		{"object serialized as json", "o", `{"k":"v"}`, true},
		{"array index", "a.b.1", "one", true},
		{"nested object through index", "a.b.2", `{"deep":true}`, true},
		{"missing key", "missing", "", false},
		{"missing nested key", "a.missing", "", false},
		{"index out of range", "a.b.9", "", false},
		{"negative index", "a.b.-1", "", false},
		{"non numeric index into array", "a.b.x", "", false},
		{"path into scalar", "s.x", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value, ok, err := FromStructured(data, tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, value)
			}
		})
	}
}

func TestFromStructuredNullIsMiss(t *testing.T) {
	_, ok, err := FromStructured(map[string]any{"a": nil}, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFromDocumentMultiIndexesByDocument(t *testing.T) {
	doc := docview.Parse("name: alice\n---\nname: bob")
	require.Equal(t, docview.Multi, doc.Kind)

	value, ok, err := FromDocument(doc, "1.name")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "bob", value)
}

func TestFromDocumentTextIsImplementationError(t *testing.T) {
	doc := docview.Parse("plain text")
	_, _, err := FromDocument(doc, "a")
	require.Error(t, err)

	var implErr *errs.ImplementationError
	assert.ErrorAs(t, err, &implErr)
}

func TestFromRaw(t *testing.T) {
	t.Run("empty path returns content untouched", func(t *testing.T) {
		value, ok, err := FromRaw("anything at all", "")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "anything at all", value)
	})

	t.Run("path into json content", func(t *testing.T) {
		value, ok, err := FromRaw(`{"db":{"host":"localhost"}}`, "db.host")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "localhost", value)
	})

	t.Run("path into yaml content", func(t *testing.T) {
		value, ok, err := FromRaw("db:\n  port: 5432", "db.port")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "5432", value)
	})

	t.Run("path into plain text fails", func(t *testing.T) {
		_, _, err := FromRaw("not structured", "a.b")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot resolve a path for a non-json/yaml content")
	})

	t.Run("path miss reports not ok", func(t *testing.T) {
		_, ok, err := FromRaw(`{"a":1}`, "b")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
