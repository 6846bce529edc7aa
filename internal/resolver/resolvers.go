package resolver

import (
	"context"
	"encoding/base64"

	"github.com/vk/preconfig/internal/ast"
	"github.com/vk/preconfig/internal/ctxlog"
	"github.com/vk/preconfig/internal/docpath"
	"github.com/vk/preconfig/internal/docview"
	"github.com/vk/preconfig/internal/errs"
	"github.com/vk/preconfig/internal/fsutil"
)

func resolvePara(_ context.Context, node *Resolved, rctx *Context) (string, bool, error) {
	if err := ValidateInput(node, InputSpec{Args: 0, Path: PathRequired}); err != nil {
		return "", false, err
	}
	data := make(map[string]any, len(rctx.Parameter))
	for k, v := range rctx.Parameter {
		data[k] = v
	}
	return docpath.FromStructured(data, node.Path)
}

func resolveEnv(_ context.Context, node *Resolved, rctx *Context) (string, bool, error) {
	if err := ValidateInput(node, InputSpec{Args: 0, Path: PathRequired}); err != nil {
		return "", false, err
	}
	value, ok := rctx.Env(node.Path)
	if !ok {
		return "", false, nil
	}
	return value, true, nil
}

// resolveFile loads another template, resolves it with the same parameters
// rooted at its own directory, and optionally extracts a dotted path from
// the result.
func resolveFile(ctx context.Context, node *Resolved, rctx *Context) (string, bool, error) {
	if err := ValidateInput(node, InputSpec{Args: 1, Path: PathOptional}); err != nil {
		return "", false, err
	}
	if rctx.Subload == nil {
		return "", false, errs.Implementationf("file resolver invoked without a template loader")
	}

	abs := fsutil.Abs(rctx.Cwd, node.Args[0])
	ctxlog.FromContext(ctx).Debug("Resolving file reference.", "path", abs)

	resolved, err := rctx.Subload(ctx, abs, rctx.Parameter)
	if err != nil {
		return "", false, err
	}
	return docpath.FromRaw(resolved, node.Path)
}

// resolveSelf answers a reference into the document under resolution. A hit
// that still contains control expressions is not an answer yet: the reducer
// keeps working and asks again once the referenced part has settled.
func resolveSelf(_ context.Context, node *Resolved, rctx *Context) (string, bool, error) {
	if err := ValidateInput(node, InputSpec{Args: 0, Path: PathRequired}); err != nil {
		return "", false, err
	}
	if rctx.Self == nil || rctx.Self.Kind == docview.Text {
		return "", false, errs.Referencef("cannot self reference to a text based template")
	}

	value, ok, err := docpath.FromDocument(rctx.Self, node.Path)
	if err != nil || !ok {
		return "", false, err
	}

	parsed, err := ast.Parse(value)
	if err != nil {
		return "", false, err
	}
	for _, n := range parsed.Nodes {
		if !n.IsLiteral() {
			return "", false, nil
		}
	}
	return value, true, nil
}

func resolveBase64Encode(_ context.Context, node *Resolved, _ *Context) (string, bool, error) {
	if err := ValidateInput(node, InputSpec{Args: 1, Path: PathForbidden}); err != nil {
		return "", false, err
	}
	return base64.StdEncoding.EncodeToString([]byte(node.Args[0])), true, nil
}

func resolveBase64Decode(_ context.Context, node *Resolved, _ *Context) (string, bool, error) {
	if err := ValidateInput(node, InputSpec{Args: 1, Path: PathOptional}); err != nil {
		return "", false, err
	}
	decoded, err := base64.StdEncoding.DecodeString(node.Args[0])
	if err != nil {
		return "", false, errs.Syntaxf("invalid base64 in %s: %v", node.Segment, err)
	}
	return docpath.FromRaw(string(decoded), node.Path)
}
