// Package analyzer drives the declare/resolve/lower passes over a
// parsed AST: it owns the active-module stack and the single
// LocalContext slot, delegating namespace graph construction to
// ctxgraph and cross-reference resolution to resolve.
package analyzer

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ralakus/modlang/ast"
	"github.com/ralakus/modlang/bytecode"
	"github.com/ralakus/modlang/ctxgraph"
	"github.com/ralakus/modlang/diagnostics"
	"github.com/ralakus/modlang/lang"
	"github.com/ralakus/modlang/log"
	"github.com/ralakus/modlang/resolve"
)

// Config controls the behavior of a single analyzer run; it replaces
// the process-wide globals a systems-language port of this analyzer
// might otherwise reach for.
type Config struct {
	// PathCacheSize bounds the resolution engine's memoized path
	// lookups. 0 selects the engine's default.
	PathCacheSize int
}

// Analyzer orchestrates one run of the declare -> resolve -> lower
// pipeline over a parsed AST.
type Analyzer struct {
	config Config
	ctx    *ctxgraph.Context
	sink   *diagnostics.Sink
	runID  uuid.UUID
}

// New returns an Analyzer ready to Analyze an AST, with a fresh Context
// holding only the root `lib` module.
func New(config Config) *Analyzer {
	return &Analyzer{
		config: config,
		ctx:    ctxgraph.NewContext(),
		sink:   diagnostics.Init(),
		runID:  uuid.New(),
	}
}

// Analyze drives the three-pass pipeline over items: declare all items
// in their enclosing namespaces (recording Pseudonyms for forward
// references), run the resolution engine to a fixed point, then run the
// lower pass. The lower pass visits functions only: for each one it opens
// a LocalContext, binds the parameters and releases it; function bodies
// are not lowered into instructions and global initializers are not
// visited. It returns the resulting Context, the (currently unmodified) AST, and
// every diagnostic collected during the run.
//
// This is the consuming-analyzer entry-point shape: New takes no AST,
// Analyze consumes one and hands back both the Context and the AST.
func (a *Analyzer) Analyze(items []ast.Item) (*ctxgraph.Context, []ast.Item, diagnostics.Messages) {
	log.WithFields(log.Fields{"run_id": a.runID, "items": len(items)}).Debugf("analyzer: starting run")

	a.declarePass(items)

	engine := resolve.NewEngine(a.ctx, a.sink, a.config.PathCacheSize)
	engine.Resolve()

	a.lowerPass(items)

	messages := a.sink.Drain()
	log.WithFields(log.Fields{"run_id": a.runID, "diagnostics": len(messages)}).Debugf("analyzer: run complete")
	return a.ctx, items, messages
}

// declarePass installs every item into the arena, creating Pseudonyms
// for anything that names a reference rather than a definition.
func (a *Analyzer) declarePass(items []ast.Item) {
	for _, item := range items {
		a.declareItem(item)
	}
}

func (a *Analyzer) declareItem(item ast.Item) {
	active := a.ctx.GetActiveModule()

	switch item.Kind {
	case ast.ItemNamespace:
		nsKey := a.ctx.CreateItem(active, item.Name, ctxgraph.NewNamespaceItem(item.Name, active), item.Region, a.sink)
		a.ctx.PushActiveModule(nsKey)
		for _, child := range item.Children {
			a.declareItem(child)
		}
		a.ctx.PopActiveModule()

	case ast.ItemStruct:
		// The named item is a placeholder marker carrying an empty struct
		// TypeData. Once the field types resolve, the anonymous struct type
		// is bound under the `<name>$` slot by the pseudonym declared
		// below; the named item itself is not updated.
		a.ctx.CreateItem(active, item.Name, ctxgraph.NewTypeItem(item.Name, bytecode.NewStructTypeData(nil)), item.Region, a.sink)
		a.declareAnonymousTypePseudonym(active, item)

	case ast.ItemTypeAlias:
		a.ctx.CreatePseudonym(ctxgraph.Pseudonym{
			DestinationNamespace: active,
			Kind:                 ctxgraph.PseudonymAlias,
			PayloadKind:          ctxgraph.PayloadTypeExpression,
			PayloadType:          derefTypeExpr(item.TypeAliasTarget),
			NewName:              item.Name,
			RelativeTo:           active,
			Origin:               item.Region,
		})

	case ast.ItemGlobal:
		a.ctx.CreateItem(active, item.Name, ctxgraph.NewGlobalItem(item.Name), item.Region, a.sink)
		if item.GlobalType != nil {
			a.ctx.CreatePseudonym(ctxgraph.Pseudonym{
				DestinationNamespace: active,
				Kind:                 ctxgraph.PseudonymAlias,
				PayloadKind:          ctxgraph.PayloadTypeExpression,
				PayloadType:          *item.GlobalType,
				NewName:              typeSlotName(item.Name),
				RelativeTo:           active,
				Origin:               item.Region,
			})
		}

	case ast.ItemFunction:
		a.ctx.CreateItem(active, item.Name, ctxgraph.NewFunctionItem(item.Name), item.Region, a.sink)

	case ast.ItemAlias:
		if item.AliasTargetPath != nil {
			a.ctx.CreatePseudonym(ctxgraph.Pseudonym{
				DestinationNamespace: active,
				Kind:                 ctxgraph.PseudonymAlias,
				PayloadKind:          ctxgraph.PayloadPath,
				PayloadPath:          *item.AliasTargetPath,
				NewName:              item.Name,
				RelativeTo:           active,
				Origin:               item.Region,
			})
		} else if item.AliasTargetType != nil {
			a.ctx.CreatePseudonym(ctxgraph.Pseudonym{
				DestinationNamespace: active,
				Kind:                 ctxgraph.PseudonymAlias,
				PayloadKind:          ctxgraph.PayloadTypeExpression,
				PayloadType:          *item.AliasTargetType,
				NewName:              item.Name,
				RelativeTo:           active,
				Origin:               item.Region,
			})
		}

	case ast.ItemExport:
		if item.ExportTargetPath != nil {
			a.ctx.CreatePseudonym(ctxgraph.Pseudonym{
				DestinationNamespace: active,
				Kind:                 ctxgraph.PseudonymExport,
				PayloadKind:          ctxgraph.PayloadPath,
				PayloadPath:          *item.ExportTargetPath,
				NewName:              item.Name,
				RelativeTo:           active,
				Origin:               item.Region,
			})
		}

	case ast.ItemImport:
		// Import resolution against another compiled Module's exports is
		// a collaborator concern (the module loader); declaring the
		// import here only reserves the local name as a Pseudonym so
		// references to it elsewhere can be recorded before the loader
		// supplies the real target.
		a.ctx.CreatePseudonym(ctxgraph.Pseudonym{
			DestinationNamespace: active,
			Kind:                 ctxgraph.PseudonymAlias,
			PayloadKind:          ctxgraph.PayloadPath,
			PayloadPath:          ast.Path{Components: []lang.Identifier{item.Name}},
			NewName:              item.Name,
			RelativeTo:           active,
			Origin:               item.Region,
		})
	}
}

func (a *Analyzer) declareAnonymousTypePseudonym(active ctxgraph.GlobalKey, item ast.Item) {
	if len(item.FieldTypes) == 0 {
		return
	}
	a.ctx.CreatePseudonym(ctxgraph.Pseudonym{
		DestinationNamespace: active,
		Kind:                 ctxgraph.PseudonymAlias,
		PayloadKind:          ctxgraph.PayloadTypeExpression,
		PayloadType:          ast.TypeExpression{Kind: ast.TypeExprStruct, Fields: item.FieldTypes, Region: item.Region},
		NewName:              typeSlotName(item.Name),
		RelativeTo:           active,
		Origin:               item.Region,
	})
}

// lowerPass is the driver's third pass: lowering function bodies and
// global initializers into typed IR using resolved bindings. Expression
// and Statement lowering is an explicit out-of-scope collaborator
// surface (§6.2); this pass only demonstrates the scoped
// LocalContext-acquisition discipline §5 requires of it.
func (a *Analyzer) lowerPass(items []ast.Item) {
	for _, item := range items {
		a.lowerItem(item)
	}
}

func (a *Analyzer) lowerItem(item ast.Item) {
	switch item.Kind {
	case ast.ItemNamespace:
		for _, child := range item.Children {
			a.lowerItem(child)
		}
	case ast.ItemFunction:
		a.lowerFunctionBody(item)
	}
}

// lowerFunctionBody demonstrates the scoped-acquisition discipline for
// the LocalContext slot: it must be released on every exit path,
// including a recovered panic, or the violation is an internal error.
func (a *Analyzer) lowerFunctionBody(item ast.Item) {
	a.ctx.CreateLocalContext()
	defer a.ctx.RemoveLocalContext()

	for _, param := range item.FunctionParameters {
		a.ctx.LocalContext().Bind(param.Name, ctxgraph.Binding{Region: item.Region})
	}
	// Statement and Expression lowering into bytecode.Instruction belongs
	// to a collaborator this package does not implement (§6.2).
}

func typeSlotName(base lang.Identifier) lang.Identifier {
	id := lang.NewIdentifier(base.String())
	id.Append('$')
	return id
}

func derefTypeExpr(t *ast.TypeExpression) ast.TypeExpression {
	if t == nil {
		return ast.TypeExpression{}
	}
	return *t
}

// FatalRun recovers a panic raised by a ctxgraph.FatalError (or any
// other internal invariant violation) during fn, wrapping it with
// run-identifying context before re-panicking, so a crash report names
// the run that produced it. Analyze does not call it: a panic inside
// Analyze reaches the caller unwrapped unless the call is made through
// FatalRun.
func (a *Analyzer) FatalRun(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				panic(errors.Wrapf(err, "analyzer run %s", a.runID))
			}
			panic(r)
		}
	}()
	fn()
}
