// Package template ties the transpiler together. A Template parses its text
// into an AST at construction time; each Resolve call reduces that tree to a
// fixpoint against an ephemeral context, rebuilding the document's
// structured view between passes so `self:` references can observe parts of
// the document that resolved earlier.
package template
