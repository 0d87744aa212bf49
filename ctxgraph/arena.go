// Package ctxgraph implements the item arena and module/namespace graph
// that the analyzer builds while resolving names: a generational map
// from GlobalKey to GlobalItem, binding tables keyed by identifier, and
// anonymous-type interning.
package ctxgraph

import (
	"fmt"

	"github.com/pkg/errors"
)

// GlobalKey is a stable handle into the item arena. Index addresses a
// slot; Generation guards against a stale key outliving a slot reuse
// (slots are never reused in this analyzer, since items are never
// removed from the arena, but the generation field is kept so a key
// minted before a hypothetical future compaction pass still fails
// loudly instead of aliasing).
type GlobalKey struct {
	Index      uint32
	Generation uint32
}

// Invalid is the zero GlobalKey, never returned by CreateItem.
var Invalid = GlobalKey{}

// FatalError reports a violation of an analyzer-internal invariant
// (popping the root module, double local-context creation, a dangling
// arena key) rather than a recoverable diagnostic. The driver should
// let it propagate and terminate the run.
type FatalError struct {
	cause error
}

func (e *FatalError) Error() string { return e.cause.Error() }
func (e *FatalError) Unwrap() error { return e.cause }

func fatalf(format string, args ...any) error {
	return &FatalError{cause: errors.Errorf(format, args...)}
}

type arenaSlot struct {
	generation uint32
	item       GlobalItem
	occupied   bool
}

// Arena owns every GlobalItem created during an analyzer run. Items are
// never removed and GlobalKeys remain valid for the arena's lifetime.
// Slots are stored in a growable slice, so a later Insert may move them:
// a *GlobalItem returned by Get can then refer to a stale copy.
type Arena struct {
	slots []arenaSlot
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

// Insert adds item to the arena and returns its key.
func (a *Arena) Insert(item GlobalItem) GlobalKey {
	slot := arenaSlot{generation: 1, item: item, occupied: true}
	a.slots = append(a.slots, slot)
	return GlobalKey{Index: uint32(len(a.slots) - 1), Generation: slot.generation}
}

// Get dereferences key, panicking with a FatalError if it does not
// resolve to a live item: every key handed out by this package is
// expected to remain valid for the arena's lifetime, so a miss here
// means a caller held on to a key from a different arena or corrupted
// one by hand.
func (a *Arena) Get(key GlobalKey) *GlobalItem {
	if int(key.Index) >= len(a.slots) {
		panic(fatalf("ctxgraph: dangling key %v: index out of range", key))
	}
	slot := &a.slots[key.Index]
	if !slot.occupied || slot.generation != key.Generation {
		panic(fatalf("ctxgraph: dangling key %v: stale generation", key))
	}
	return &slot.item
}

func (a *Arena) String() string {
	return fmt.Sprintf("Arena(%d items)", len(a.slots))
}
