// Package ast turns raw template text into a tree of control nodes. The
// top level of the tree interleaves literal runs with `${...}` control
// expressions; each control's argument list and dotted path are themselves
// node sequences, so controls nest to arbitrary depth.
package ast
