package bytecode

import "github.com/ralakus/modlang/codec"

// Version is a Module's semver2 triple.
type Version struct {
	Major uint8
	Minor uint8
	Patch uint8
}

// NewVersion constructs a Version.
func NewVersion(major, minor, patch uint8) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

func (v Version) encode(s *codec.Sink) {
	codec.EncodeU8(s, v.Major)
	codec.EncodeU8(s, v.Minor)
	codec.EncodeU8(s, v.Patch)
}

func decodeVersion(c *codec.Cursor) (Version, error) {
	major, err := codec.DecodeU8(c)
	if err != nil {
		return Version{}, err
	}
	minor, err := codec.DecodeU8(c)
	if err != nil {
		return Version{}, err
	}
	patch, err := codec.DecodeU8(c)
	if err != nil {
		return Version{}, err
	}
	return NewVersion(major, minor, patch), nil
}

// Module is the main container for the in-memory representation of a
// single compilation unit's bytecode.
type Module struct {
	Name    string
	Version Version

	Types     []Type
	Imports   []ImportModule
	Globals   []Global
	Functions []Function
	Exports   []Export
}

// NewModule returns an empty Module with the given name and version.
func NewModule(name string, version Version) Module {
	return Module{Name: name, Version: version}
}

// Encode appends the little-endian binary encoding of m to s.
func (m Module) Encode(s *codec.Sink) {
	codec.EncodeString(s, m.Name)
	m.Version.encode(s)
	codec.EncodeSeq(s, m.Types, func(s *codec.Sink, t Type) { t.encode(s) })
	codec.EncodeSeq(s, m.Imports, func(s *codec.Sink, i ImportModule) { i.encode(s) })
	codec.EncodeSeq(s, m.Globals, func(s *codec.Sink, g Global) { g.encode(s) })
	codec.EncodeSeq(s, m.Functions, func(s *codec.Sink, f Function) { f.encode(s) })
	codec.EncodeSeq(s, m.Exports, func(s *codec.Sink, e Export) { e.encode(s) })
}

// DecodeModule decodes a Module from c, validating structure as it goes
// (tag ranges, length-prefixed strings, framing) but performing no
// semantic validation (cross-references between ids are not checked).
func DecodeModule(c *codec.Cursor) (Module, error) {
	name, err := codec.DecodeString(c)
	if err != nil {
		return Module{}, err
	}
	version, err := decodeVersion(c)
	if err != nil {
		return Module{}, err
	}
	types, err := codec.DecodeSeq(c, decodeType)
	if err != nil {
		return Module{}, err
	}
	imports, err := codec.DecodeSeq(c, decodeImportModule)
	if err != nil {
		return Module{}, err
	}
	globals, err := codec.DecodeSeq(c, decodeGlobal)
	if err != nil {
		return Module{}, err
	}
	functions, err := codec.DecodeSeq(c, decodeFunction)
	if err != nil {
		return Module{}, err
	}
	exports, err := codec.DecodeSeq(c, decodeExport)
	if err != nil {
		return Module{}, err
	}
	return Module{
		Name:      name,
		Version:   version,
		Types:     types,
		Imports:   imports,
		Globals:   globals,
		Functions: functions,
		Exports:   exports,
	}, nil
}

// EncodeModule is a convenience wrapper returning the encoded bytes of m.
func EncodeModule(m Module) []byte {
	s := codec.NewSink()
	m.Encode(s)
	return s.Bytes()
}

// DecodeModuleBytes is a convenience wrapper decoding a Module from a
// raw byte slice.
func DecodeModuleBytes(data []byte) (Module, error) {
	return DecodeModule(codec.NewCursor(data))
}
