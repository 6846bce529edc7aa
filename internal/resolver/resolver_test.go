package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/preconfig/internal/docview"
	"github.com/vk/preconfig/internal/errs"
)

func TestRegistryCoversEverySource(t *testing.T) {
	reg := Registry()
	for _, name := range []string{"para", "env", "file", "self", "base64encode", "base64decode"} {
		assert.Contains(t, reg, name)
	}
	assert.NotContains(t, reg, "literal")
}

func TestValidateInput(t *testing.T) {
	testCases := []struct {
		name      string
		node      *Resolved
		spec      InputSpec
		expectErr bool
	}{
		{
			name:      "zero args with none present",
			node:      &Resolved{Segment: "${env:E}", Path: "E", HasPath: true},
			spec:      InputSpec{Args: 0, Path: PathRequired},
			expectErr: false,
		},
		{
			name:      "zero args rejects explicit empty list",
			node:      &Resolved{Segment: "${env():E}", Args: []string{}, HasArgs: true, Path: "E", HasPath: true},
			spec:      InputSpec{Args: 0, Path: PathRequired},
			expectErr: true,
		},
		{
			name:      "one arg satisfied",
			node:      &Resolved{Segment: "${base64encode(v)}", Args: []string{"v"}, HasArgs: true},
			spec:      InputSpec{Args: 1, Path: PathForbidden},
			expectErr: false,
		},
		{
			name:      "one arg missing",
			node:      &Resolved{Segment: "${base64encode}"},
			spec:      InputSpec{Args: 1, Path: PathForbidden},
			expectErr: true,
		},
		{
			name:      "too many args",
			node:      &Resolved{Segment: "${base64encode(a,b)}", Args: []string{"a", "b"}, HasArgs: true},
			spec:      InputSpec{Args: 1, Path: PathForbidden},
			expectErr: true,
		},
		{
			name:      "required path missing",
			node:      &Resolved{Segment: "${para}"},
			spec:      InputSpec{Args: 0, Path: PathRequired},
			expectErr: true,
		},
		{
			name:      "required path present but empty",
			node:      &Resolved{Segment: "${para:}", HasPath: true},
			spec:      InputSpec{Args: 0, Path: PathRequired},
			expectErr: false,
		},
		{
			name:      "forbidden path present",
			node:      &Resolved{Segment: "${base64encode(v):x}", Args: []string{"v"}, HasArgs: true, Path: "x", HasPath: true},
			spec:      InputSpec{Args: 1, Path: PathForbidden},
			expectErr: true,
		},
		{
			name:      "optional path absent",
			node:      &Resolved{Segment: "${base64decode(v)}", Args: []string{"v"}, HasArgs: true},
			spec:      InputSpec{Args: 1, Path: PathOptional},
			expectErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateInput(tc.node, tc.spec)
			if tc.expectErr {
				require.Error(t, err)
				var syntaxErr *errs.SyntaxError
				assert.ErrorAs(t, err, &syntaxErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestResolvePara(t *testing.T) {
	rctx := &Context{Parameter: map[string]string{"key": "value"}}

	value, ok, err := resolvePara(context.Background(), &Resolved{
		Type: "para", Segment: "${para:key}", Path: "key", HasPath: true,
	}, rctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "value", value)

	_, ok, err = resolvePara(context.Background(), &Resolved{
		Type: "para", Segment: "${para:missing}", Path: "missing", HasPath: true,
	}, rctx)
	require.NoError(t, err)
	assert.False(t, ok, "missing parameter stays pending for the fixpoint report")
}

func TestResolveEnv(t *testing.T) {
	rctx := &Context{LookupEnv: func(name string) (string, bool) {
		if name == "ENV" {
			return "env", true
		}
		return "", false
	}}

	value, ok, err := resolveEnv(context.Background(), &Resolved{
		Type: "env", Segment: "${env:ENV}", Path: "ENV", HasPath: true,
	}, rctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "env", value)

	_, ok, err = resolveEnv(context.Background(), &Resolved{
		Type: "env", Segment: "${env:UNSET}", Path: "UNSET", HasPath: true,
	}, rctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveSelf(t *testing.T) {
	t.Run("text template is a hard failure", func(t *testing.T) {
		rctx := &Context{Self: docview.Parse("plain text")}
		_, _, err := resolveSelf(context.Background(), &Resolved{
			Type: "self", Segment: "${self:a}", Path: "a", HasPath: true,
		}, rctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot self reference to a text based template")
	})

	t.Run("resolved value is returned", func(t *testing.T) {
		rctx := &Context{Self: docview.Parse(`{"a":"done"}`)}
		value, ok, err := resolveSelf(context.Background(), &Resolved{
			Type: "self", Segment: "${self:a}", Path: "a", HasPath: true,
		}, rctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "done", value)
	})

	t.Run("value still holding controls is pending", func(t *testing.T) {
		rctx := &Context{Self: docview.Parse(`{"a":"${para:x}"}`)}
		_, ok, err := resolveSelf(context.Background(), &Resolved{
			Type: "self", Segment: "${self:a}", Path: "a", HasPath: true,
		}, rctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("missing path is pending", func(t *testing.T) {
		rctx := &Context{Self: docview.Parse(`{"a":"x"}`)}
		_, ok, err := resolveSelf(context.Background(), &Resolved{
			Type: "self", Segment: "${self:b}", Path: "b", HasPath: true,
		}, rctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestResolveBase64(t *testing.T) {
	value, ok, err := resolveBase64Encode(context.Background(), &Resolved{
		Type: "base64encode", Segment: "${base64encode(value)}", Args: []string{"value"}, HasArgs: true,
	}, &Context{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "dmFsdWU=", value)

	value, ok, err = resolveBase64Decode(context.Background(), &Resolved{
		Type: "base64decode", Segment: "${base64decode(dmFsdWU=)}", Args: []string{"dmFsdWU="}, HasArgs: true,
	}, &Context{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "value", value)
}

func TestResolveBase64DecodeWithPath(t *testing.T) {
	// "YTogeA==" decodes to "a: x".
	value, ok, err := resolveBase64Decode(context.Background(), &Resolved{
		Type:    "base64decode",
		Segment: "${base64decode(YTogeA==):a}",
		Args:    []string{"YTogeA=="},
		HasArgs: true,
		Path:    "a",
		HasPath: true,
	}, &Context{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "x", value)
}

func TestResolveBase64DecodeRejectsGarbage(t *testing.T) {
	_, _, err := resolveBase64Decode(context.Background(), &Resolved{
		Type: "base64decode", Segment: "${base64decode(!!)}", Args: []string{"!!"}, HasArgs: true,
	}, &Context{})
	require.Error(t, err)
	var syntaxErr *errs.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestResolveFileDelegatesToSubload(t *testing.T) {
	var loadedPath string
	rctx := &Context{
		Cwd: "/work",
		Subload: func(_ context.Context, absPath string, _ map[string]string) (string, error) {
			loadedPath = absPath
			return `{"db":{"host":"localhost"}}`, nil
		},
	}

	value, ok, err := resolveFile(context.Background(), &Resolved{
		Type:    "file",
		Segment: "${file(config.json):db.host}",
		Args:    []string{"config.json"},
		HasArgs: true,
		Path:    "db.host",
		HasPath: true,
	}, rctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "localhost", value)
	assert.Equal(t, "/work/config.json", loadedPath)
}

func TestResolveFileWithoutPathReturnsWholeContent(t *testing.T) {
	rctx := &Context{
		Cwd: "/work",
		Subload: func(_ context.Context, _ string, _ map[string]string) (string, error) {
			return "raw contents", nil
		},
	}

	value, ok, err := resolveFile(context.Background(), &Resolved{
		Type:    "file",
		Segment: "${file(notes.txt)}",
		Args:    []string{"notes.txt"},
		HasArgs: true,
	}, rctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "raw contents", value)
}
