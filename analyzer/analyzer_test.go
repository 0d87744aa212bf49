package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ralakus/modlang/ast"
	"github.com/ralakus/modlang/lang"
	"github.com/ralakus/modlang/source"
)

func path(components ...string) *ast.Path {
	p := &ast.Path{}
	for _, c := range components {
		p.Components = append(p.Components, lang.NewIdentifier(c))
	}
	return p
}

var region = source.NewRegion("t.mod", 0, 1)

func TestDeclareAndResolveNamespaceAlias(t *testing.T) {
	items := []ast.Item{
		{
			Kind:   ast.ItemNamespace,
			Name:   lang.NewIdentifier("inner"),
			Region: region,
			Children: []ast.Item{
				{Kind: ast.ItemGlobal, Name: lang.NewIdentifier("Y"), Region: region},
			},
		},
		{
			Kind:            ast.ItemAlias,
			Name:            lang.NewIdentifier("X"),
			Region:          region,
			AliasTargetPath: path("inner"),
		},
		{
			Kind:             ast.ItemExport,
			Name:             lang.NewIdentifier("ExportedY"),
			Region:           region,
			ExportTargetPath: path("X", "Y"),
		},
	}

	a := New(Config{})
	ctx, _, messages := a.Analyze(items)

	require.Empty(t, messages)
	root := ctx.Arena.Get(ctx.Root())
	exported, ok := root.ExportBindings["ExportedY"]
	require.True(t, ok)

	inner, ok := root.LocalBindings["inner"]
	require.True(t, ok)
	innerItem := ctx.Arena.Get(inner.Key)
	yBinding, ok := innerItem.LocalBindings["Y"]
	require.True(t, ok)
	require.Equal(t, yBinding.Key, exported.Key)
}

func TestDuplicateGlobalBindingReportsShadow(t *testing.T) {
	items := []ast.Item{
		{Kind: ast.ItemGlobal, Name: lang.NewIdentifier("G"), Region: region},
		{Kind: ast.ItemGlobal, Name: lang.NewIdentifier("G"), Region: region},
	}

	a := New(Config{})
	ctx, _, messages := a.Analyze(items)

	require.Len(t, messages, 1)
	require.Contains(t, messages[0].Text, "already bound")
	root := ctx.Arena.Get(ctx.Root())
	require.Contains(t, root.LocalBindings, "G")
}

func TestAliasCycleViaAST(t *testing.T) {
	items := []ast.Item{
		{Kind: ast.ItemAlias, Name: lang.NewIdentifier("A"), Region: region, AliasTargetPath: path("B")},
		{Kind: ast.ItemAlias, Name: lang.NewIdentifier("B"), Region: region, AliasTargetPath: path("A")},
	}

	a := New(Config{})
	_, _, messages := a.Analyze(items)

	require.Len(t, messages, 2)
	for _, m := range messages {
		require.Contains(t, m.Text, "cycle")
	}
}

func TestFunctionBodyLocalContextLifecycle(t *testing.T) {
	items := []ast.Item{
		{
			Kind:   ast.ItemFunction,
			Name:   lang.NewIdentifier("f"),
			Region: region,
			FunctionParameters: []ast.Parameter{
				{Name: lang.NewIdentifier("x"), Type: ast.TypeExpression{Kind: ast.TypeExprNamed, Named: path("f")}},
			},
		},
	}

	a := New(Config{})
	require.NotPanics(t, func() {
		a.Analyze(items)
	})
}

func TestUnresolvedAliasHardFailsWithSuggestion(t *testing.T) {
	items := []ast.Item{
		{Kind: ast.ItemGlobal, Name: lang.NewIdentifier("Target"), Region: region},
		{Kind: ast.ItemAlias, Name: lang.NewIdentifier("X"), Region: region, AliasTargetPath: path("Targett")},
	}

	a := New(Config{})
	_, _, messages := a.Analyze(items)

	require.Len(t, messages, 1)
	require.Contains(t, messages[0].Text, "unresolved reference")
	require.Contains(t, messages[0].Text, "did you mean 'Target'?")
}

func TestFatalRunRewrapsInternalPanic(t *testing.T) {
	a := New(Config{})
	want := "analyzer run " + a.runID.String() + ": ctxgraph: cannot pop the root module from the active-module stack"
	require.PanicsWithError(t, want, func() {
		a.FatalRun(func() {
			a.ctx.PopActiveModule() // root pop is a fatal ctxgraph error
		})
	})
}
