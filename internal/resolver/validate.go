package resolver

import "github.com/vk/preconfig/internal/errs"

// PathMode states whether a resolver requires, forbids, or tolerates a
// dotted path.
type PathMode int

const (
	PathOptional PathMode = iota
	PathRequired
	PathForbidden
)

// InputSpec is a resolver's shape: how many arguments it takes and what it
// expects of the path.
type InputSpec struct {
	Args int
	Path PathMode
}

// ValidateInput checks a reduced control against spec. A resolver taking
// zero arguments rejects even an explicit empty list, so `${env()}` is a
// syntax error while `${env:HOME}` is fine.
func ValidateInput(node *Resolved, spec InputSpec) error {
	if spec.Args == 0 {
		if node.HasArgs {
			return errs.Syntaxf("%s does not take arguments", node.Segment)
		}
	} else {
		if !node.HasArgs || len(node.Args) != spec.Args {
			got := 0
			if node.HasArgs {
				got = len(node.Args)
			}
			return errs.Syntaxf("wrong number of arguments in %s: expected %d, got %d", node.Segment, spec.Args, got)
		}
	}

	switch spec.Path {
	case PathRequired:
		if !node.HasPath {
			return errs.Syntaxf("missing required path in %s", node.Segment)
		}
	case PathForbidden:
		if node.HasPath {
			return errs.Syntaxf("path is not allowed in %s", node.Segment)
		}
	}
	return nil
}
