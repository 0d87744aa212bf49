package bytecode

import "github.com/ralakus/modlang/codec"

// AliasDataKind is the data-less tag shared by ImportData and ExportData.
type AliasDataKind uint8

const (
	AliasNamespace AliasDataKind = iota
	AliasGlobal
	AliasFunction

	maxAliasDataKind = AliasFunction
)

func decodeAliasDataKind(c *codec.Cursor) (AliasDataKind, error) {
	tag, err := codec.DecodeTag(c, uint8(maxAliasDataKind))
	return AliasDataKind(tag), err
}

// ImportModule binds another module depended on by a Module.
type ImportModule struct {
	Name    string
	Version Version
	Items   []Import
}

func (im ImportModule) encode(s *codec.Sink) {
	codec.EncodeString(s, im.Name)
	im.Version.encode(s)
	codec.EncodeSeq(s, im.Items, func(s *codec.Sink, i Import) { i.encode(s) })
}

func decodeImportModule(c *codec.Cursor) (ImportModule, error) {
	name, err := codec.DecodeString(c)
	if err != nil {
		return ImportModule{}, err
	}
	version, err := decodeVersion(c)
	if err != nil {
		return ImportModule{}, err
	}
	items, err := codec.DecodeSeq(c, decodeImport)
	if err != nil {
		return ImportModule{}, err
	}
	return ImportModule{Name: name, Version: version, Items: items}, nil
}

// Import binds an item from an ImportModule to a name in the importing
// Module.
type Import struct {
	Name string
	Data ImportData
}

func (i Import) encode(s *codec.Sink) {
	codec.EncodeString(s, i.Name)
	i.Data.encode(s)
}

func decodeImport(c *codec.Cursor) (Import, error) {
	name, err := codec.DecodeString(c)
	if err != nil {
		return Import{}, err
	}
	data, err := decodeImportData(c)
	if err != nil {
		return Import{}, err
	}
	return Import{Name: name, Data: data}, nil
}

// ImportData is the variant payload of an Import binding.
type ImportData struct {
	Kind AliasDataKind

	Namespace []Import

	GlobalID   GlobalID
	FunctionID FunctionID
	TypeID     TypeID
}

func NewImportNamespace(items []Import) ImportData {
	return ImportData{Kind: AliasNamespace, Namespace: items}
}
func NewImportGlobal(g GlobalID, t TypeID) ImportData {
	return ImportData{Kind: AliasGlobal, GlobalID: g, TypeID: t}
}
func NewImportFunction(f FunctionID, t TypeID) ImportData {
	return ImportData{Kind: AliasFunction, FunctionID: f, TypeID: t}
}

func (d ImportData) encode(s *codec.Sink) {
	codec.EncodeTag(s, uint8(d.Kind))
	switch d.Kind {
	case AliasNamespace:
		codec.EncodeSeq(s, d.Namespace, func(s *codec.Sink, i Import) { i.encode(s) })
	case AliasGlobal:
		encodeGlobalID(s, d.GlobalID)
		encodeTypeID(s, d.TypeID)
	case AliasFunction:
		encodeFunctionID(s, d.FunctionID)
		encodeTypeID(s, d.TypeID)
	}
}

func decodeImportData(c *codec.Cursor) (ImportData, error) {
	kind, err := decodeAliasDataKind(c)
	if err != nil {
		return ImportData{}, err
	}
	switch kind {
	case AliasNamespace:
		items, err := codec.DecodeSeq(c, decodeImport)
		if err != nil {
			return ImportData{}, err
		}
		return NewImportNamespace(items), nil
	case AliasGlobal:
		g, err := decodeGlobalID(c)
		if err != nil {
			return ImportData{}, err
		}
		t, err := decodeTypeID(c)
		if err != nil {
			return ImportData{}, err
		}
		return NewImportGlobal(g, t), nil
	case AliasFunction:
		f, err := decodeFunctionID(c)
		if err != nil {
			return ImportData{}, err
		}
		t, err := decodeTypeID(c)
		if err != nil {
			return ImportData{}, err
		}
		return NewImportFunction(f, t), nil
	default:
		return ImportData{}, codec.ErrUnexpectedValue
	}
}

// Export binds an item exposed by a Module.
type Export struct {
	Name string
	Data ExportData
}

func (e Export) encode(s *codec.Sink) {
	codec.EncodeString(s, e.Name)
	e.Data.encode(s)
}

func decodeExport(c *codec.Cursor) (Export, error) {
	name, err := codec.DecodeString(c)
	if err != nil {
		return Export{}, err
	}
	data, err := decodeExportData(c)
	if err != nil {
		return Export{}, err
	}
	return Export{Name: name, Data: data}, nil
}

// ExportData is the variant payload of an Export binding.
type ExportData struct {
	Kind AliasDataKind

	Namespace []Export

	GlobalID   GlobalID
	FunctionID FunctionID
}

func NewExportNamespace(items []Export) ExportData {
	return ExportData{Kind: AliasNamespace, Namespace: items}
}
func NewExportGlobal(g GlobalID) ExportData     { return ExportData{Kind: AliasGlobal, GlobalID: g} }
func NewExportFunction(f FunctionID) ExportData { return ExportData{Kind: AliasFunction, FunctionID: f} }

func (d ExportData) encode(s *codec.Sink) {
	codec.EncodeTag(s, uint8(d.Kind))
	switch d.Kind {
	case AliasNamespace:
		codec.EncodeSeq(s, d.Namespace, func(s *codec.Sink, e Export) { e.encode(s) })
	case AliasGlobal:
		encodeGlobalID(s, d.GlobalID)
	case AliasFunction:
		encodeFunctionID(s, d.FunctionID)
	}
}

func decodeExportData(c *codec.Cursor) (ExportData, error) {
	kind, err := decodeAliasDataKind(c)
	if err != nil {
		return ExportData{}, err
	}
	switch kind {
	case AliasNamespace:
		items, err := codec.DecodeSeq(c, decodeExport)
		if err != nil {
			return ExportData{}, err
		}
		return NewExportNamespace(items), nil
	case AliasGlobal:
		g, err := decodeGlobalID(c)
		if err != nil {
			return ExportData{}, err
		}
		return NewExportGlobal(g), nil
	case AliasFunction:
		f, err := decodeFunctionID(c)
		if err != nil {
			return ExportData{}, err
		}
		return NewExportFunction(f), nil
	default:
		return ExportData{}, codec.ErrUnexpectedValue
	}
}
