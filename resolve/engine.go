// Package resolve implements the fixed-point Pseudonym resolution
// sweep (§4.5): delayed resolution of aliases, exports, and the type
// expressions they may carry, against a ctxgraph.Context.
package resolve

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ralakus/modlang/ast"
	"github.com/ralakus/modlang/ctxgraph"
	"github.com/ralakus/modlang/diagnostics"
	"github.com/ralakus/modlang/log"
)

type pathCacheKey struct {
	relativeTo ctxgraph.GlobalKey
	name       string
}

// Engine runs the resolution sweep for one analyzer run.
type Engine struct {
	ctx   *ctxgraph.Context
	sink  *diagnostics.Sink
	cache *lru.Cache[pathCacheKey, ctxgraph.GlobalKey]
}

// NewEngine builds a resolution Engine over ctx, reporting diagnostics
// to sink. pathCacheSize bounds the LRU memoization of path-component
// lookups; 0 selects a reasonable default.
func NewEngine(ctx *ctxgraph.Context, sink *diagnostics.Sink, pathCacheSize int) *Engine {
	if pathCacheSize <= 0 {
		pathCacheSize = 512
	}
	cache, err := lru.New[pathCacheKey, ctxgraph.GlobalKey](pathCacheSize)
	if err != nil {
		// only returns an error for a non-positive size, which is excluded above
		panic(err)
	}
	return &Engine{ctx: ctx, sink: sink, cache: cache}
}

type resolveStatus uint8

const (
	statusResolved resolveStatus = iota
	statusSoftFail
	statusCycle
)

// Resolve runs the fixed-point sweep to completion: repeated passes
// over the pending pseudonym queue until either it is empty or a full
// pass makes no progress, at which point every still-pending pseudonym
// hard-fails with a diagnostic at its origin.
func (e *Engine) Resolve() {
	pending := e.ctx.PseudonymQueue()

	for pass := 0; len(pending) > 0; pass++ {
		var next []ctxgraph.GlobalKey
		progressed := false

		for _, key := range pending {
			switch e.attemptResolve(key, map[ctxgraph.GlobalKey]bool{}) {
			case statusResolved:
				progressed = true
			case statusCycle:
				progressed = true // removed from the queue either way
			case statusSoftFail:
				next = append(next, key)
			}
		}

		if !progressed {
			for _, key := range next {
				item := e.ctx.Arena.Get(key)
				e.sink.Errorf(item.Pseudonym.Origin, "unresolved reference '%s'%s", item.Pseudonym.NewName, e.suggestionSuffix(key))
				item.Pseudonym.State = ctxgraph.PseudonymHardFailed
			}
			return
		}

		pending = next
		log.Debugf("resolve: pass %d resolved some pseudonyms, %d remaining", pass, len(pending))
	}
}

// attemptResolve tries to resolve the pseudonym at key, chaining
// through any other pending Pseudonym its path passes through. visiting
// tracks the chain for the current top-level attempt so A -> B -> A
// cycles are caught instead of infinitely recursing.
func (e *Engine) attemptResolve(key ctxgraph.GlobalKey, visiting map[ctxgraph.GlobalKey]bool) resolveStatus {
	item := e.ctx.Arena.Get(key)
	ps := item.Pseudonym

	switch ps.State {
	case ctxgraph.PseudonymResolved:
		return statusResolved
	case ctxgraph.PseudonymHardFailed:
		return statusCycle
	}

	if visiting[key] {
		return statusCycle
	}
	visiting[key] = true
	defer delete(visiting, key)

	ps.State = ctxgraph.PseudonymInProgress

	var resolvedKey ctxgraph.GlobalKey
	switch ps.PayloadKind {
	case ctxgraph.PayloadPath:
		key2, status := e.resolvePath(ps.RelativeTo, ps.PayloadPath, visiting)
		if status != pathFound {
			if status == pathCycle {
				e.failCycle(key, visiting)
				return statusCycle
			}
			ps.State = ctxgraph.PseudonymPending
			return statusSoftFail
		}
		resolvedKey = key2

	case ctxgraph.PayloadTypeExpression:
		key2, ok := e.resolveTypeExpression(ps.RelativeTo, ps.PayloadType, visiting)
		if !ok {
			ps.State = ctxgraph.PseudonymPending
			return statusSoftFail
		}
		resolvedKey = key2
	}

	ok := e.ctx.InstallPseudonymResolution(ps.DestinationNamespace, ps.Kind, ps.NewName.String(), resolvedKey, ps.Origin, e.sink)
	if !ok {
		ps.State = ctxgraph.PseudonymHardFailed
		return statusCycle
	}

	ps.State = ctxgraph.PseudonymResolved
	return statusResolved
}

func (e *Engine) failCycle(origin ctxgraph.GlobalKey, visiting map[ctxgraph.GlobalKey]bool) {
	fail := func(key ctxgraph.GlobalKey) {
		item := e.ctx.Arena.Get(key)
		if item.Pseudonym.State == ctxgraph.PseudonymHardFailed {
			return
		}
		item.Pseudonym.State = ctxgraph.PseudonymHardFailed
		e.sink.Errorf(item.Pseudonym.Origin, "alias cycle detected involving '%s'", item.Pseudonym.NewName)
	}
	for key := range visiting {
		fail(key)
	}
	fail(origin)
}

type pathStatus uint8

const (
	pathFound pathStatus = iota
	pathNotFound
	pathCycle
)

// resolvePath walks path's dotted components starting at relativeTo,
// following only already-bound names. A component bound to another
// pending Pseudonym is chained into (recursively resolved) rather than
// treated as an immediate failure, so alias-of-alias references work
// without an extra sweep pass.
func (e *Engine) resolvePath(relativeTo ctxgraph.GlobalKey, path ast.Path, visiting map[ctxgraph.GlobalKey]bool) (ctxgraph.GlobalKey, pathStatus) {
	cur := relativeTo

	for i, component := range path.Components {
		name := component.String()
		cacheKey := pathCacheKey{relativeTo: cur, name: name}

		if cached, ok := e.cache.Get(cacheKey); ok {
			cur = cached
			if i == len(path.Components)-1 {
				return cur, pathFound
			}
			continue
		}

		item := e.ctx.Arena.Get(cur)
		binding, ok := item.LocalBindings[name]
		if !ok {
			return ctxgraph.GlobalKey{}, pathNotFound
		}

		targetKey := binding.Key
		target := e.ctx.Arena.Get(targetKey)

		if target.Kind == ctxgraph.ItemPseudonymItem {
			switch e.attemptResolve(targetKey, visiting) {
			case statusCycle:
				return ctxgraph.GlobalKey{}, pathCycle
			case statusSoftFail:
				return ctxgraph.GlobalKey{}, pathNotFound
			}
			binding = item.LocalBindings[name]
			targetKey = binding.Key
			target = e.ctx.Arena.Get(targetKey)
		}

		if i == len(path.Components)-1 {
			e.cache.Add(cacheKey, targetKey)
			return targetKey, pathFound
		}

		if target.Kind != ctxgraph.ItemModule && target.Kind != ctxgraph.ItemNamespace {
			return ctxgraph.GlobalKey{}, pathNotFound
		}

		e.cache.Add(cacheKey, targetKey)
		cur = targetKey
	}

	return cur, pathFound
}
