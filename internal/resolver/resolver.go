package resolver

import (
	"context"
	"os"

	"github.com/vk/preconfig/internal/docview"
)

// Resolved is a control node whose arguments and path have been fully
// reduced. Args is meaningful only when HasArgs is set, Path only when
// HasPath is set; absent and empty stay distinct.
type Resolved struct {
	Type    string
	Segment string

	Args    []string
	HasArgs bool

	Path    string
	HasPath bool
}

// Context carries everything a resolver may consult. It is immutable for
// the duration of one reduction pass; Self is swapped between passes as the
// document converges.
type Context struct {
	// Cwd anchors relative file references.
	Cwd string
	// Parameter holds the caller-supplied key/value pairs.
	Parameter map[string]string
	// Self is the current structured view of the document being resolved.
	Self *docview.Document
	// LookupEnv reads the process environment; tests inject their own.
	LookupEnv func(string) (string, bool)
	// Subload resolves another template file with the same parameters.
	// Installed by the template package so resolvers stay free of its
	// import.
	Subload func(ctx context.Context, absPath string, parameter map[string]string) (string, error)
}

// Env returns the environment lookup, defaulting to the real process
// environment.
func (c *Context) Env(name string) (string, bool) {
	if c.LookupEnv != nil {
		return c.LookupEnv(name)
	}
	return os.LookupEnv(name)
}

// Func resolves one control. ok=false with a nil error means the control
// cannot be resolved yet and should be retried on a later pass.
type Func func(ctx context.Context, node *Resolved, rctx *Context) (value string, ok bool, err error)

// Registry returns the mapping from source name to resolver. Unknown names
// have no entry; the reducer leaves such controls untouched so they surface
// as unresolvable references at the fixpoint.
func Registry() map[string]Func {
	return map[string]Func{
		"para":         resolvePara,
		"env":          resolveEnv,
		"file":         resolveFile,
		"self":         resolveSelf,
		"base64encode": resolveBase64Encode,
		"base64decode": resolveBase64Decode,
	}
}
