package ctxgraph

import (
	"github.com/ralakus/modlang/diagnostics"
	"github.com/ralakus/modlang/lang"
	"github.com/ralakus/modlang/source"
)

// Context is the full module/namespace graph built during one analyzer
// run: the item arena, the anonymous-type intern table, the
// active-module stack, and the single optional LocalContext slot.
type Context struct {
	Arena  *Arena
	Intern *InternTable

	root           GlobalKey
	activeModules  []GlobalKey
	localContext   *LocalContext
	pseudonymQueue []GlobalKey
}

// RootModuleName is the canonical name of the always-present root
// module.
const RootModuleName = "lib"

// NewContext builds a fresh Context with only the root `lib` module
// present, pushed onto the active-module stack.
func NewContext() *Context {
	arena := NewArena()
	root := arena.Insert(NewModuleItem(lang.NewIdentifier(RootModuleName), RootModuleName))
	return &Context{
		Arena:         arena,
		Intern:        newInternTable(),
		root:          root,
		activeModules: []GlobalKey{root},
	}
}

// Root returns the key of the always-present `lib` module.
func (c *Context) Root() GlobalKey { return c.root }

// GetActiveModule returns the top of the active-module stack.
func (c *Context) GetActiveModule() GlobalKey {
	return c.activeModules[len(c.activeModules)-1]
}

// PushActiveModule makes key the new active module.
func (c *Context) PushActiveModule(key GlobalKey) {
	c.activeModules = append(c.activeModules, key)
}

// PopActiveModule restores the previous active module. Popping down to
// (or past) the root is a fatal internal error.
func (c *Context) PopActiveModule() {
	if len(c.activeModules) <= 1 {
		panic(fatalf("ctxgraph: cannot pop the root module from the active-module stack"))
	}
	c.activeModules = c.activeModules[:len(c.activeModules)-1]
}

// CreateLocalContext installs a new LocalContext. Calling this while
// one is already active is a fatal internal error.
func (c *Context) CreateLocalContext() *LocalContext {
	if c.localContext != nil {
		panic(fatalf("ctxgraph: a LocalContext is already active"))
	}
	c.localContext = NewLocalContext()
	return c.localContext
}

// LocalContext returns the active LocalContext. Calling this with none
// active is a fatal internal error.
func (c *Context) LocalContext() *LocalContext {
	if c.localContext == nil {
		panic(fatalf("ctxgraph: no LocalContext is active"))
	}
	return c.localContext
}

// RemoveLocalContext clears the active LocalContext. Calling this with
// none active is a fatal internal error.
func (c *Context) RemoveLocalContext() {
	if c.localContext == nil {
		panic(fatalf("ctxgraph: no LocalContext is active to remove"))
	}
	c.localContext = nil
}

// CreatePseudonym installs p as a new arena item, enqueues it for the
// resolution engine's fixed-point sweep, and immediately occupies its
// NewName slot in DestinationNamespace so other in-flight path
// resolutions can see (and chain through, or soft-fail on) it before it
// resolves.
func (c *Context) CreatePseudonym(p Pseudonym) GlobalKey {
	key := c.Arena.Insert(NewPseudonymItem(p))
	c.pseudonymQueue = append(c.pseudonymQueue, key)

	dest := c.Arena.Get(p.DestinationNamespace)
	name := p.NewName.String()
	switch p.Kind {
	case PseudonymAlias:
		dest.LocalBindings[name] = Binding{Key: key, Region: p.Origin}
	case PseudonymExport:
		dest.ExportBindings[name] = Binding{Key: key, Region: p.Origin}
	}
	return key
}

// InstallPseudonymResolution overwrites the binding-table slot a
// Pseudonym occupies with its resolved target. It fails (without
// overwriting) if the slot holds an item that is not a Pseudonym,
// i.e. something else already resolved into it: late shadowing is an
// error, never a silent overwrite. A slot held by any Pseudonym,
// including a different one, is overwritten.
func (c *Context) InstallPseudonymResolution(destKey GlobalKey, kind PseudonymKind, name string, resolvedKey GlobalKey, origin source.Region, sink *diagnostics.Sink) bool {
	dest := c.Arena.Get(destKey)
	table := dest.LocalBindings
	if kind == PseudonymExport {
		table = dest.ExportBindings
	}

	if current, ok := table[name]; ok {
		if curItem := c.Arena.Get(current.Key); curItem.Kind != ItemPseudonymItem {
			sink.Errorf(origin, "'%s' cannot be bound: already resolved to another item at %s", name, current.Region)
			return false
		}
	}

	table[name] = Binding{Key: resolvedKey, Region: origin}
	return true
}

// PseudonymQueue returns the keys of every Pseudonym created so far,
// whether or not they have since been resolved.
func (c *Context) PseudonymQueue() []GlobalKey {
	return append([]GlobalKey(nil), c.pseudonymQueue...)
}

func describeKind(kind GlobalItemKind) string {
	switch kind {
	case ItemModule:
		return "module"
	case ItemNamespace:
		return "namespace"
	case ItemTypeItem:
		return "type"
	case ItemGlobalItem:
		return "global"
	case ItemFunctionItem:
		return "function"
	case ItemPseudonymItem:
		return "pseudonym"
	default:
		return "item"
	}
}

// CreateItem installs newItem into the arena, binding identifier in
// moduleKey's local bindings.
//
// If newItem is an anonymous type whose TypeData already has an
// interned key, that existing key is returned and nothing new is
// inserted. Otherwise a new arena slot is always created (so the
// returned key is always reachable), but if identifier is already
// bound in moduleKey, one diagnostic is emitted citing the prior bind
// region and kind, and the existing binding is left untouched: the
// first bind of an identifier in a namespace remains authoritative.
func (c *Context) CreateItem(moduleKey GlobalKey, identifier lang.Identifier, newItem GlobalItem, origin source.Region, sink *diagnostics.Sink) GlobalKey {
	if newItem.Kind == ItemTypeItem && newItem.Name.IsEmpty() && newItem.TypeData != nil {
		if existing, ok := c.Intern.Lookup(*newItem.TypeData); ok {
			return existing
		}
		key := c.Arena.Insert(newItem)
		c.Intern.Insert(*newItem.TypeData, key)
		return key
	}

	module := c.Arena.Get(moduleKey)
	key := c.Arena.Insert(newItem)

	name := identifier.String()
	if prior, exists := module.LocalBindings[name]; exists {
		priorItem := c.Arena.Get(prior.Key)
		sink.Errorf(origin, "'%s' is already bound as a %s at %s", name, describeKind(priorItem.Kind), prior.Region)
		return key
	}

	module.LocalBindings[name] = Binding{Key: key, Region: origin}
	return key
}
