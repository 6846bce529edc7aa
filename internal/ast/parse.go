package ast

import (
	"strings"

	"github.com/vk/preconfig/internal/marker"
)

// Parse builds the AST for text. It fails only when the marker locator
// rejects the text (an unmatched `${`).
func Parse(text string) (*AST, error) {
	nodes, err := parseSequence(text)
	if err != nil {
		return nil, err
	}
	return &AST{Content: text, Nodes: nodes}, nil
}

func parseSequence(text string) (Sequence, error) {
	markers, err := marker.Locate(text, nil)
	if err != nil {
		return nil, err
	}
	outer := firstDegree(markers)

	var nodes Sequence
	pos := 0
	for _, m := range outer {
		if m.Open > pos {
			nodes = append(nodes, &Node{Type: Literal, Segment: text[pos:m.Open]})
		}
		segment := text[m.Open : m.Close+1]
		node, err := parseControl(segment)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
		pos = m.Close + 1
	}
	if pos < len(text) {
		nodes = append(nodes, &Node{Type: Literal, Segment: text[pos:]})
	}
	return nodes, nil
}

// firstDegree keeps only the outermost markers. Markers arrive sorted by
// opening offset and never interleave, so a marker is nested exactly when
// its closing offset falls inside a previously kept pair.
func firstDegree(markers []marker.Marker) []marker.Marker {
	var kept []marker.Marker
	maxClose := -1
	for _, m := range markers {
		if m.Close > maxClose {
			kept = append(kept, m)
			maxClose = m.Close
		}
	}
	return kept
}

// parseControl scans a `${...}` segment as a control header: an identifier,
// an optional parenthesized argument list, and an optional `:`-prefixed
// dotted path, with whitespace tolerated around each piece. A segment that
// does not fit the shape degrades to a literal node covering the whole
// segment.
func parseControl(segment string) (*Node, error) {
	inner := segment[2 : len(segment)-1]
	pos := skipSpace(inner, 0)

	start := pos
	for pos < len(inner) && isWordByte(inner[pos]) {
		pos++
	}
	if pos == start {
		return &Node{Type: Literal, Segment: segment}, nil
	}
	name := inner[start:pos]
	pos = skipSpace(inner, pos)

	node := &Node{Type: name, Segment: segment}

	if pos < len(inner) && inner[pos] == '(' {
		enclosed, end, ok := parenGroup(inner, pos)
		if !ok {
			return &Node{Type: Literal, Segment: segment}, nil
		}
		args, err := parseArgs(enclosed)
		if err != nil {
			return nil, err
		}
		node.Args = args
		node.HasArgs = true
		pos = skipSpace(inner, end)
	}

	if pos < len(inner) && inner[pos] == ':' {
		path, err := parseSequence(strings.TrimSpace(inner[pos+1:]))
		if err != nil {
			return nil, err
		}
		node.Path = path
		node.HasPath = true
		return node, nil
	}

	if pos != len(inner) {
		return &Node{Type: Literal, Segment: segment}, nil
	}
	return node, nil
}

// parenGroup finds the `)` matching the `(` at open using the bracket
// locator, so escaped and nested parentheses inside the group are handled
// the same way `${`/`}` pairs are.
func parenGroup(inner string, open int) (enclosed string, end int, ok bool) {
	markers, err := marker.Locate(inner[open:], &marker.Options{Opening: "(", Closing: ")"})
	if err != nil {
		return "", 0, false
	}
	for _, m := range markers {
		if m.Open == 0 {
			return inner[open+1 : open+m.Close], open + m.Close + 1, true
		}
	}
	return "", 0, false
}

// parseArgs splits an argument-list body on commas. A body that is entirely
// whitespace is the explicit empty list `()`; otherwise every comma-separated
// token is kept, including empty ones.
func parseArgs(enclosed string) ([]Sequence, error) {
	if strings.TrimSpace(enclosed) == "" {
		return []Sequence{}, nil
	}
	tokens := strings.Split(enclosed, ",")
	args := make([]Sequence, 0, len(tokens))
	for _, token := range tokens {
		seq, err := parseSequence(strings.TrimSpace(token))
		if err != nil {
			return nil, err
		}
		args = append(args, seq)
	}
	return args, nil
}

func skipSpace(s string, pos int) int {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t' || s[pos] == '\n' || s[pos] == '\r') {
		pos++
	}
	return pos
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
