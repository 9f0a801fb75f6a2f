// Package tags handles the pipe-delimited tag fields stored in the data
// tables and the comma-joined prompt strings built from them.
package tags

import "strings"

const (
	// Delimiter separates tags inside a single table field.
	Delimiter = "|"

	// PromptSeparator joins tags into a prompt string.
	PromptSeparator = ", "
)

// List is an ordered tag sequence. Duplicates are allowed and order is
// preserved all the way into the final prompt.
type List []string

// Parse splits a tag field on the pipe character. Segments are passed
// through verbatim: no trimming, no deduplication, no case folding.
// An empty field yields an empty list.
func Parse(field string) List {
	if field == "" {
		return List{}
	}
	return List(strings.Split(field, Delimiter))
}

// ParseField parses the named field of a record-like lookup.
// A missing field yields an empty list.
func ParseField(lookup func(string) (string, bool), name string) List {
	v, ok := lookup(name)
	if !ok {
		return List{}
	}
	return Parse(v)
}

// Clone returns an independent copy of the list.
func (l List) Clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Join renders the list as a prompt string.
func (l List) Join() string {
	return strings.Join(l, PromptSeparator)
}

// Count returns how many times tag occurs in the list.
func (l List) Count(tag string) int {
	n := 0
	for _, t := range l {
		if t == tag {
			n++
		}
	}
	return n
}
