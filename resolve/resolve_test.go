package resolve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ralakus/modlang/ast"
	"github.com/ralakus/modlang/ctxgraph"
	"github.com/ralakus/modlang/diagnostics"
	"github.com/ralakus/modlang/lang"
	"github.com/ralakus/modlang/source"
)

func pathOf(components ...string) ast.Path {
	p := ast.Path{}
	for _, c := range components {
		p.Components = append(p.Components, lang.NewIdentifier(c))
	}
	return p
}

// TestAliasReExportResolution is scenario S5.
func TestAliasReExportResolution(t *testing.T) {
	ctx := ctxgraph.NewContext()
	sink := diagnostics.Init()
	region := source.NewRegion("m.mod", 0, 1)

	nsKey := ctx.CreateItem(ctx.Root(), lang.NewIdentifier("inner"),
		ctxgraph.NewNamespaceItem(lang.NewIdentifier("inner"), ctx.Root()), region, sink)
	yKey := ctx.CreateItem(nsKey, lang.NewIdentifier("Y"), ctxgraph.NewGlobalItem(lang.NewIdentifier("Y")), region, sink)

	ctx.CreatePseudonym(ctxgraph.Pseudonym{
		DestinationNamespace: ctx.Root(),
		Kind:                 ctxgraph.PseudonymAlias,
		PayloadKind:          ctxgraph.PayloadPath,
		PayloadPath:          pathOf("inner"),
		NewName:              lang.NewIdentifier("X"),
		RelativeTo:           ctx.Root(),
		Origin:               region,
	})
	ctx.CreatePseudonym(ctxgraph.Pseudonym{
		DestinationNamespace: ctx.Root(),
		Kind:                 ctxgraph.PseudonymExport,
		PayloadKind:          ctxgraph.PayloadPath,
		PayloadPath:          pathOf("X", "Y"),
		NewName:              lang.NewIdentifier("ExportedY"),
		RelativeTo:           ctx.Root(),
		Origin:               region,
	})

	NewEngine(ctx, sink, 0).Resolve()

	require.Empty(t, sink.Messages())
	root := ctx.Arena.Get(ctx.Root())
	exported, ok := root.ExportBindings["ExportedY"]
	require.True(t, ok)
	require.Equal(t, yKey, exported.Key)
}

// TestAliasCycleDetection is scenario S7.
func TestAliasCycleDetection(t *testing.T) {
	ctx := ctxgraph.NewContext()
	sink := diagnostics.Init()
	region := source.NewRegion("m.mod", 0, 1)

	aKey := ctx.CreatePseudonym(ctxgraph.Pseudonym{
		DestinationNamespace: ctx.Root(),
		Kind:                 ctxgraph.PseudonymAlias,
		PayloadKind:          ctxgraph.PayloadPath,
		PayloadPath:          pathOf("B"),
		NewName:              lang.NewIdentifier("A"),
		RelativeTo:           ctx.Root(),
		Origin:               region,
	})
	bKey := ctx.CreatePseudonym(ctxgraph.Pseudonym{
		DestinationNamespace: ctx.Root(),
		Kind:                 ctxgraph.PseudonymAlias,
		PayloadKind:          ctxgraph.PayloadPath,
		PayloadPath:          pathOf("A"),
		NewName:              lang.NewIdentifier("B"),
		RelativeTo:           ctx.Root(),
		Origin:               region,
	})

	NewEngine(ctx, sink, 0).Resolve()

	require.Len(t, sink.Messages(), 2)
	aItem := ctx.Arena.Get(aKey)
	bItem := ctx.Arena.Get(bKey)
	require.Equal(t, ctxgraph.PseudonymHardFailed, aItem.Pseudonym.State)
	require.Equal(t, ctxgraph.PseudonymHardFailed, bItem.Pseudonym.State)
}

// TestUnresolvableReferenceHardFailsAtFixedPoint covers property 6 and
// the "stuck pass" branch of the sweep.
func TestUnresolvableReferenceHardFailsAtFixedPoint(t *testing.T) {
	ctx := ctxgraph.NewContext()
	sink := diagnostics.Init()
	region := source.NewRegion("m.mod", 0, 1)

	key := ctx.CreatePseudonym(ctxgraph.Pseudonym{
		DestinationNamespace: ctx.Root(),
		Kind:                 ctxgraph.PseudonymAlias,
		PayloadKind:          ctxgraph.PayloadPath,
		PayloadPath:          pathOf("doesNotExist"),
		NewName:              lang.NewIdentifier("X"),
		RelativeTo:           ctx.Root(),
		Origin:               region,
	})

	NewEngine(ctx, sink, 0).Resolve()

	require.Len(t, sink.Messages(), 1)
	require.Contains(t, sink.Messages()[0].Text, "unresolved reference")
	item := ctx.Arena.Get(key)
	require.Equal(t, ctxgraph.PseudonymHardFailed, item.Pseudonym.State)
}

func TestChainedAliasResolvesInOnePass(t *testing.T) {
	ctx := ctxgraph.NewContext()
	sink := diagnostics.Init()
	region := source.NewRegion("m.mod", 0, 1)

	targetKey := ctx.CreateItem(ctx.Root(), lang.NewIdentifier("Real"), ctxgraph.NewGlobalItem(lang.NewIdentifier("Real")), region, sink)

	ctx.CreatePseudonym(ctxgraph.Pseudonym{
		DestinationNamespace: ctx.Root(), Kind: ctxgraph.PseudonymAlias,
		PayloadKind: ctxgraph.PayloadPath, PayloadPath: pathOf("Middle"),
		NewName: lang.NewIdentifier("Outer"), RelativeTo: ctx.Root(), Origin: region,
	})
	ctx.CreatePseudonym(ctxgraph.Pseudonym{
		DestinationNamespace: ctx.Root(), Kind: ctxgraph.PseudonymAlias,
		PayloadKind: ctxgraph.PayloadPath, PayloadPath: pathOf("Real"),
		NewName: lang.NewIdentifier("Middle"), RelativeTo: ctx.Root(), Origin: region,
	})

	NewEngine(ctx, sink, 0).Resolve()

	require.Empty(t, sink.Messages())
	root := ctx.Arena.Get(ctx.Root())
	require.Equal(t, targetKey, root.LocalBindings["Outer"].Key)
	require.Equal(t, targetKey, root.LocalBindings["Middle"].Key)
}
