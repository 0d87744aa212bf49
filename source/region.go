// Package source defines the opaque source-location type shared across
// the analyzer and diagnostic sink. Lexing, parsing, and rendering of
// these regions against real source text are external collaborators;
// this package only specifies the surface the analyzer depends on.
package source

import "fmt"

// Region is an opaque range in some source document. Two Regions
// compare equal only when they denote the same span of the same
// document; no other semantics are assumed.
type Region struct {
	Document string
	Start    int
	End      int
}

// NewRegion builds a Region spanning [start, end) in document.
func NewRegion(document string, start, end int) Region {
	return Region{Document: document, Start: start, End: end}
}

// Equal reports whether two Regions denote the same span.
func (r Region) Equal(other Region) bool {
	return r.Document == other.Document && r.Start == other.Start && r.End == other.End
}

func (r Region) String() string {
	return fmt.Sprintf("%s:%d-%d", r.Document, r.Start, r.End)
}
