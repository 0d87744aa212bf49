// Package ast defines the minimal surface of parsed syntax the analyzer
// consumes: top-level Items, dotted Paths, and unresolved
// TypeExpressions. The lexer and parser that produce these values are
// out of scope; this package only fixes the shape the analyzer expects
// to walk.
package ast

import (
	"github.com/ralakus/modlang/lang"
	"github.com/ralakus/modlang/source"
)

// Path is a dotted sequence of identifiers as written in source, e.g.
// `a::b::c`.
type Path struct {
	Components []lang.Identifier
	Region     source.Region
}

func (p Path) String() string {
	s := ""
	for i, c := range p.Components {
		if i > 0 {
			s += "::"
		}
		s += c.String()
	}
	return s
}

// TypeExpressionKind discriminates the syntactic forms a type reference
// may take before resolution.
type TypeExpressionKind uint8

const (
	TypeExprNamed TypeExpressionKind = iota
	TypeExprPointer
	TypeExprStruct
	TypeExprFunction
)

// TypeExpression is an unresolved type reference as written in source.
type TypeExpression struct {
	Kind   TypeExpressionKind
	Region source.Region

	Named *Path

	Pointee *TypeExpression

	Fields []TypeExpression

	Parameters []TypeExpression
	Result     *TypeExpression
}

// ItemKind discriminates the top-level syntactic item forms.
type ItemKind uint8

const (
	ItemImport ItemKind = iota
	ItemNamespace
	ItemAlias
	ItemExport
	ItemStruct
	ItemTypeAlias
	ItemGlobal
	ItemFunction
)

// Item is a single top-level declaration as produced by the parser.
// Only the fields relevant to Kind are meaningful, mirroring the tagged
// structs used throughout the bytecode package.
type Item struct {
	Kind     ItemKind
	Region   source.Region
	Name     lang.Identifier
	Children []Item

	AliasTargetPath *Path
	AliasTargetType *TypeExpression

	ExportTargetPath *Path

	ImportModuleName string
	ImportVersion    string

	FieldTypes []TypeExpression

	TypeAliasTarget *TypeExpression

	GlobalType        *TypeExpression
	GlobalInitializer *Expression

	FunctionParameters []Parameter
	FunctionResult     *TypeExpression
	FunctionBody       []Statement
}

// Parameter is a single function-parameter declaration.
type Parameter struct {
	Name lang.Identifier
	Type TypeExpression
}

// Expression and Statement are left as opaque node placeholders: their
// internal shape belongs to the lowering pass, which is out of scope
// here beyond the single entry point the analyzer calls.
type Expression struct {
	Region source.Region
}

type Statement struct {
	Region source.Region
}
