package template

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vk/preconfig/internal/ast"
	"github.com/vk/preconfig/internal/fsutil"
	"github.com/vk/preconfig/internal/resolver"
)

// Template is a parsed configuration template. Construction parses the text
// once; the AST is immutable afterwards and Resolve may be called any number
// of times, concurrently, with different parameter maps.
type Template struct {
	ast       *ast.AST
	cwd       string
	lookupEnv func(string) (string, bool)
	registry  map[string]resolver.Func
}

// Option configures a Template.
type Option func(*Template)

// WithCwd anchors relative `file(...)` references at dir instead of the
// process working directory.
func WithCwd(dir string) Option {
	return func(t *Template) { t.cwd = dir }
}

// WithLookupEnv substitutes the environment lookup used by `env:` controls.
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(t *Template) { t.lookupEnv = lookup }
}

// New parses text into a Template. It fails with a syntax error when the
// text contains an unmatched `${`.
func New(text string, opts ...Option) (*Template, error) {
	parsed, err := ast.Parse(text)
	if err != nil {
		return nil, err
	}
	t := &Template{
		ast:      parsed,
		registry: resolver.Registry(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.cwd == "" {
		if wd, err := os.Getwd(); err == nil {
			t.cwd = wd
		} else {
			t.cwd = "."
		}
	}
	return t, nil
}

// NewFromFile reads path and parses it as a template rooted at the file's
// directory, so relative file references inside it resolve against its own
// location.
func NewFromFile(ctx context.Context, path string, opts ...Option) (*Template, error) {
	content, err := fsutil.ReadTextFile(ctx, path)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithCwd(filepath.Dir(path))}, opts...)
	return New(content, opts...)
}

// AST exposes the parse result for tests and tooling.
func (t *Template) AST() *ast.AST { return t.ast }

// subload implements the file resolver's recursion: load the referenced
// file as its own template and resolve it with the same parameter map.
func (t *Template) subload(ctx context.Context, absPath string, parameter map[string]string) (string, error) {
	child, err := NewFromFile(ctx, absPath, WithLookupEnv(t.lookupEnv))
	if err != nil {
		return "", err
	}
	return child.Resolve(ctx, parameter)
}
