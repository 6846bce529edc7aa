package ast

// Literal is the node type for plain text runs and for resolved controls.
const Literal = "literal"

// Sequence is an ordered run of nodes, the parse of one string.
type Sequence []*Node

// Node is one element of a parsed template. A literal node carries only its
// Segment. A control node's Type names its source (para, env, file, self,
// base64encode, base64decode, or an unknown identifier that will fail at
// resolve time).
//
// Absent and empty are distinct for both Args and Path: `${fn}` has neither,
// `${fn()}` has an empty-but-present argument list, and `${fn:}` has an
// empty-but-present path. HasArgs and HasPath record presence; the slices
// are meaningful only when the corresponding flag is set.
type Node struct {
	Type    string
	Segment string

	Args    []Sequence
	HasArgs bool

	Path    Sequence
	HasPath bool
}

// IsLiteral reports whether the node is plain text.
func (n *Node) IsLiteral() bool { return n.Type == Literal }

// AST is a parsed template: the original text plus its top-level node
// sequence. Concatenating the top-level segments reproduces Content exactly.
type AST struct {
	Content string
	Nodes   Sequence
}
