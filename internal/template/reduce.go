package template

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vk/preconfig/internal/ast"
	"github.com/vk/preconfig/internal/ctxlog"
	"github.com/vk/preconfig/internal/docview"
	"github.com/vk/preconfig/internal/errs"
	"github.com/vk/preconfig/internal/resolver"
)

// Resolve reduces the template against parameter until no further control
// can make progress. It returns the fully resolved text, or a reference
// error listing every control left standing at the fixpoint.
//
// Each pass resolves whatever is resolvable given the current document view,
// then the view is rebuilt from the partially resolved text so `self:`
// references see the progress. The leaf count strictly decreases on every
// productive pass, which bounds the iteration.
func (t *Template) Resolve(ctx context.Context, parameter map[string]string) (string, error) {
	logger := ctxlog.FromContext(ctx)

	rctx := &resolver.Context{
		Cwd:       t.cwd,
		Parameter: parameter,
		Self:      docview.Parse(t.ast.Content),
		LookupEnv: t.lookupEnv,
		Subload:   t.subload,
	}

	leaves := countSequence(t.ast.Nodes)
	nodes, err := t.reduceSequence(ctx, t.ast.Nodes, rctx)
	if err != nil {
		return "", err
	}
	logger.Debug("Reduction pass complete.", "pass", 1, "leaves", countSequence(nodes))

	pass := 1
	for len(nodes) > 1 && countSequence(nodes) != leaves {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		rctx.Self = docview.Parse(stringifyForce(nodes))
		leaves = countSequence(nodes)

		pass++
		nodes, err = t.reduceSequence(ctx, nodes, rctx)
		if err != nil {
			return "", err
		}
		logger.Debug("Reduction pass complete.", "pass", pass, "leaves", countSequence(nodes))
	}

	out, ok := stringify(nodes)
	if !ok {
		var sb strings.Builder
		sb.WriteString("unresolvable references:")
		for _, n := range nodes {
			if !n.IsLiteral() {
				sb.WriteString("\n- ")
				sb.WriteString(n.Segment)
			}
		}
		return "", &errs.ReferenceError{Message: sb.String()}
	}
	return out, nil
}

// reduceSequence runs one reduction pass over seq. Nodes within a pass are
// independent (the context is read-only until the pass ends), so they fan
// out concurrently; results are joined before literal coalescing.
func (t *Template) reduceSequence(ctx context.Context, seq ast.Sequence, rctx *resolver.Context) (ast.Sequence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(ast.Sequence, len(seq))
	g, gctx := errgroup.WithContext(ctx)
	for i, node := range seq {
		i, node := i, node
		g.Go(func() error {
			reduced, err := t.reduceNode(gctx, node, rctx)
			if err != nil {
				return err
			}
			out[i] = reduced
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return coalesce(out), nil
}

// reduceNode reduces one node. Arguments and path are reduced first; their
// progress is kept on the returned node even when the control itself cannot
// resolve this pass. Only a control whose arguments and path are all plain
// strings is dispatched to its resolver.
func (t *Template) reduceNode(ctx context.Context, node *ast.Node, rctx *resolver.Context) (*ast.Node, error) {
	if node.IsLiteral() {
		return node, nil
	}

	next := &ast.Node{
		Type:    node.Type,
		Segment: node.Segment,
		HasArgs: node.HasArgs,
		HasPath: node.HasPath,
	}

	ready := true
	var args []string
	if node.HasArgs {
		next.Args = make([]ast.Sequence, len(node.Args))
		args = make([]string, len(node.Args))
		for i, arg := range node.Args {
			reduced, err := t.reduceSequence(ctx, arg, rctx)
			if err != nil {
				return nil, err
			}
			next.Args[i] = reduced
			value, ok := stringify(reduced)
			if !ok {
				ready = false
				continue
			}
			args[i] = value
		}
	}

	var path string
	if node.HasPath {
		reduced, err := t.reduceSequence(ctx, node.Path, rctx)
		if err != nil {
			return nil, err
		}
		next.Path = reduced
		value, ok := stringify(reduced)
		if !ok {
			ready = false
		}
		path = value
	}

	if !ready {
		return next, nil
	}

	resolve, known := t.registry[node.Type]
	if !known {
		return next, nil
	}

	value, ok, err := resolve(ctx, &resolver.Resolved{
		Type:    node.Type,
		Segment: node.Segment,
		Args:    args,
		HasArgs: node.HasArgs,
		Path:    path,
		HasPath: node.HasPath,
	}, rctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return next, nil
	}
	return &ast.Node{Type: ast.Literal, Segment: value}, nil
}

// coalesce merges runs of adjacent literals into one node. The document
// view rebuilt between passes sees structural progress only after this
// merge.
func coalesce(seq ast.Sequence) ast.Sequence {
	out := make(ast.Sequence, 0, len(seq))
	for _, node := range seq {
		if node.IsLiteral() && len(out) > 0 && out[len(out)-1].IsLiteral() {
			out[len(out)-1] = &ast.Node{
				Type:    ast.Literal,
				Segment: out[len(out)-1].Segment + node.Segment,
			}
			continue
		}
		out = append(out, node)
	}
	return out
}

// stringify concatenates a fully literal sequence. ok=false means at least
// one control remains.
func stringify(seq ast.Sequence) (string, bool) {
	var sb strings.Builder
	for _, node := range seq {
		if !node.IsLiteral() {
			return "", false
		}
		sb.WriteString(node.Segment)
	}
	return sb.String(), true
}

// stringifyForce concatenates segments regardless of node type, leaving
// unresolved controls verbatim.
func stringifyForce(seq ast.Sequence) string {
	var sb strings.Builder
	for _, node := range seq {
		sb.WriteString(node.Segment)
	}
	return sb.String()
}

// countSequence counts every node reachable through arguments and paths.
// The fixpoint stops when a full pass leaves this count unchanged.
func countSequence(seq ast.Sequence) int {
	total := len(seq)
	for _, node := range seq {
		if node.HasArgs {
			for _, arg := range node.Args {
				total += countSequence(arg)
			}
		}
		if node.HasPath {
			total += countSequence(node.Path)
		}
	}
	return total
}
