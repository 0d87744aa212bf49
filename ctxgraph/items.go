package ctxgraph

import (
	"github.com/ralakus/modlang/ast"
	"github.com/ralakus/modlang/bytecode"
	"github.com/ralakus/modlang/lang"
	"github.com/ralakus/modlang/source"
)

// GlobalItemKind discriminates the variants of GlobalItem.
type GlobalItemKind uint8

const (
	ItemModule GlobalItemKind = iota
	ItemNamespace
	ItemTypeItem
	ItemGlobalItem
	ItemFunctionItem
	ItemPseudonymItem
)

// Binding records where an identifier was first bound, so later shadow
// diagnostics can cite the prior location.
type Binding struct {
	Key    GlobalKey
	Region source.Region
}

// BindingTable maps an identifier's text to the item it names.
type BindingTable map[string]Binding

func newBindingTable() BindingTable { return make(BindingTable) }

// PseudonymKind discriminates what a Pseudonym, once resolved, should
// become: a local alias binding or a re-exported binding.
type PseudonymKind uint8

const (
	PseudonymAlias PseudonymKind = iota
	PseudonymExport
)

// PseudonymPayloadKind discriminates what a Pseudonym resolves against.
type PseudonymPayloadKind uint8

const (
	PayloadPath PseudonymPayloadKind = iota
	PayloadTypeExpression
)

// PseudonymState is where a Pseudonym sits in the resolution state
// machine (§4.5): Pending -> InProgress -> (Resolved | SoftFail back to
// Pending | HardFail).
type PseudonymState uint8

const (
	PseudonymPending PseudonymState = iota
	PseudonymInProgress
	PseudonymResolved
	PseudonymHardFailed
)

// Pseudonym is an unresolved placeholder: "bind NewName in
// DestinationNamespace to whatever Payload resolves to, with lookup
// anchored at RelativeTo."
type Pseudonym struct {
	DestinationNamespace GlobalKey
	Kind                 PseudonymKind

	PayloadKind    PseudonymPayloadKind
	PayloadPath    ast.Path
	PayloadType    ast.TypeExpression

	NewName    lang.Identifier
	RelativeTo GlobalKey
	Origin     source.Region

	State PseudonymState
}

// GlobalItem is a tagged arena entry. Only the fields relevant to Kind
// are meaningful.
type GlobalItem struct {
	Kind GlobalItemKind
	Name lang.Identifier

	// Module / Namespace
	CanonicalName  string
	Parent         GlobalKey
	HasParent      bool
	LocalBindings  BindingTable
	ExportBindings BindingTable

	// Type item
	TypeData *bytecode.TypeData

	// Global / Function item
	ValueType    GlobalKey
	HasValueType bool
	GlobalInit   []ast.Expression
	FunctionBody []ast.Statement

	// Pseudonym
	Pseudonym *Pseudonym
}

// NewModuleItem builds a module item with no parent (used for the root
// `lib` module).
func NewModuleItem(name lang.Identifier, canonicalName string) GlobalItem {
	return GlobalItem{
		Kind:           ItemModule,
		Name:           name,
		CanonicalName:  canonicalName,
		LocalBindings:  newBindingTable(),
		ExportBindings: newBindingTable(),
	}
}

// NewNamespaceItem builds a nested namespace item under parent.
func NewNamespaceItem(name lang.Identifier, parent GlobalKey) GlobalItem {
	return GlobalItem{
		Kind:           ItemNamespace,
		Name:           name,
		Parent:         parent,
		HasParent:      true,
		LocalBindings:  newBindingTable(),
		ExportBindings: newBindingTable(),
	}
}

// NewTypeItem builds a type item. An item with no name-bearing binding
// (Name.IsEmpty()) is anonymous and is a candidate for interning.
func NewTypeItem(name lang.Identifier, data bytecode.TypeData) GlobalItem {
	return GlobalItem{Kind: ItemTypeItem, Name: name, TypeData: &data}
}

// NewGlobalItem builds a Global item with no resolved type yet.
func NewGlobalItem(name lang.Identifier) GlobalItem {
	return GlobalItem{Kind: ItemGlobalItem, Name: name}
}

// NewFunctionItem builds a Function item with no resolved type yet.
func NewFunctionItem(name lang.Identifier) GlobalItem {
	return GlobalItem{Kind: ItemFunctionItem, Name: name}
}

// NewPseudonymItem wraps p as an arena item.
func NewPseudonymItem(p Pseudonym) GlobalItem {
	return GlobalItem{Kind: ItemPseudonymItem, Name: p.NewName, Pseudonym: &p}
}

// IsAnonymous reports whether a type item has no user-given name.
func (item *GlobalItem) IsAnonymous() bool {
	return item.Kind == ItemTypeItem && item.Name.IsEmpty()
}
