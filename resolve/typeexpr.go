package resolve

import (
	"github.com/ralakus/modlang/ast"
	"github.com/ralakus/modlang/bytecode"
	"github.com/ralakus/modlang/ctxgraph"
	"github.com/ralakus/modlang/lang"
	"github.com/ralakus/modlang/source"
)

// keyToTypeID projects a GlobalKey into the bytecode.TypeID space used
// inside TypeData during analysis. The arena never reuses a slot index
// (Generation is always 1), so the index alone is a stable stand-in for
// a type's identity until the lowering pass renumbers types into a
// Module's contiguous Types slice.
func keyToTypeID(key ctxgraph.GlobalKey) bytecode.TypeID {
	return bytecode.TypeID(key.Index)
}

// resolveTypeExpression evaluates a syntactic type expression against
// the context, creating intermediate anonymous types through the intern
// map as needed. It returns false if any named component resolves to a
// still-pending Pseudonym or an unbound name.
func (e *Engine) resolveTypeExpression(relativeTo ctxgraph.GlobalKey, expr ast.TypeExpression, visiting map[ctxgraph.GlobalKey]bool) (ctxgraph.GlobalKey, bool) {
	switch expr.Kind {
	case ast.TypeExprNamed:
		if expr.Named == nil {
			return ctxgraph.GlobalKey{}, false
		}
		key, status := e.resolvePath(relativeTo, *expr.Named, visiting)
		return key, status == pathFound

	case ast.TypeExprPointer:
		if expr.Pointee == nil {
			return ctxgraph.GlobalKey{}, false
		}
		pointee, ok := e.resolveTypeExpression(relativeTo, *expr.Pointee, visiting)
		if !ok {
			return ctxgraph.GlobalKey{}, false
		}
		return e.internAnonymousType(bytecode.NewPointerTypeData(keyToTypeID(pointee))), true

	case ast.TypeExprStruct:
		fields := make([]bytecode.TypeID, 0, len(expr.Fields))
		for _, f := range expr.Fields {
			fieldKey, ok := e.resolveTypeExpression(relativeTo, f, visiting)
			if !ok {
				return ctxgraph.GlobalKey{}, false
			}
			fields = append(fields, keyToTypeID(fieldKey))
		}
		return e.internAnonymousType(bytecode.NewStructTypeData(fields)), true

	case ast.TypeExprFunction:
		params := make([]bytecode.TypeID, 0, len(expr.Parameters))
		for _, p := range expr.Parameters {
			paramKey, ok := e.resolveTypeExpression(relativeTo, p, visiting)
			if !ok {
				return ctxgraph.GlobalKey{}, false
			}
			params = append(params, keyToTypeID(paramKey))
		}

		var result *bytecode.TypeID
		if expr.Result != nil {
			resultKey, ok := e.resolveTypeExpression(relativeTo, *expr.Result, visiting)
			if !ok {
				return ctxgraph.GlobalKey{}, false
			}
			id := keyToTypeID(resultKey)
			result = &id
		}

		return e.internAnonymousType(bytecode.NewFunctionTypeData(params, result)), true

	default:
		return ctxgraph.GlobalKey{}, false
	}
}

func (e *Engine) internAnonymousType(data bytecode.TypeData) ctxgraph.GlobalKey {
	return e.ctx.CreateItem(e.ctx.Root(), lang.Identifier{}, ctxgraph.NewTypeItem(lang.Identifier{}, data), source.Region{}, e.sink)
}
