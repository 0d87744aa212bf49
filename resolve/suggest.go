package resolve

import (
	"fmt"

	"github.com/agnivade/levenshtein"

	"github.com/ralakus/modlang/ctxgraph"
)

// maxSuggestionDistance bounds how different a candidate name may be
// from the unresolved one before it stops being worth suggesting.
const maxSuggestionDistance = 3

// suggestionSuffix returns a " (did you mean 'x'?)" hint for the
// unresolved pseudonym at key, or an empty string if nothing in its
// search scope is close enough to be useful.
func (e *Engine) suggestionSuffix(key ctxgraph.GlobalKey) string {
	item := e.ctx.Arena.Get(key)
	ps := item.Pseudonym
	target := ps.NewName.String()

	if ps.PayloadKind != ctxgraph.PayloadPath || len(ps.PayloadPath.Components) == 0 {
		return ""
	}
	target = ps.PayloadPath.Components[len(ps.PayloadPath.Components)-1].String()

	scope := e.ctx.Arena.Get(ps.RelativeTo)

	best := ""
	bestDist := maxSuggestionDistance + 1
	for candidate := range scope.LocalBindings {
		d := levenshtein.ComputeDistance(target, candidate)
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}

	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean '%s'?)", best)
}
