package marker

import (
	"sort"
	"strings"

	"github.com/vk/preconfig/internal/errs"
)

// Marker is a matched bracket pair. Open is the offset of the first byte of
// the opening token; Close is the offset of the closing token.
type Marker struct {
	Open  int
	Close int
}

// Options selects the delimiter pair to locate. The zero value is not valid;
// pass nil to Locate for the default `${` / `}` pair.
type Options struct {
	Opening string
	Closing string
}

var defaultOptions = Options{Opening: "${", Closing: "}"}

// Locate returns every matched bracket pair in content, nested pairs
// included, sorted by opening offset. An opening token with no matching
// closing token is a syntax error. Closing tokens with no matching opening
// are plain text and are ignored.
func Locate(content string, opts *Options) ([]Marker, error) {
	if opts == nil {
		opts = &defaultOptions
	}

	openings := scan(content, opts.Opening)
	closings := scan(content, opts.Closing)

	// Pair openings from the rightmost (deepest) first: the nearest
	// remaining closing to the right is always the correct mate, which
	// yields proper nesting without any stack bookkeeping.
	var markers []Marker
	for i := len(openings) - 1; i >= 0; i-- {
		open := openings[i]
		j := sort.SearchInts(closings, open+1)
		if j == len(closings) {
			return nil, errs.Syntaxf("missing closing for the opening at %d", open)
		}
		markers = append(markers, Marker{Open: open, Close: closings[j]})
		closings = append(closings[:j], closings[j+1:]...)
	}

	sort.Slice(markers, func(a, b int) bool { return markers[a].Open < markers[b].Open })
	return markers, nil
}

// scan returns the offsets of every unescaped occurrence of token. A token
// is escaped when the run of backslashes immediately before it has odd
// length; escaped tokens are skipped entirely.
func scan(content, token string) []int {
	var offsets []int
	for i := 0; i+len(token) <= len(content); {
		if !strings.HasPrefix(content[i:], token) {
			i++
			continue
		}
		run := 0
		for j := i - 1; j >= 0 && content[j] == '\\'; j-- {
			run++
		}
		if run%2 == 0 {
			offsets = append(offsets, i)
		}
		i += len(token)
	}
	return offsets
}
