// Package bytecode is the in-memory data model of a compiled module and
// its little-endian binary codec: types, globals, functions, imports,
// exports, and a stack-machine instruction set with nested control-flow
// blocks. Each entity encodes its fields in declaration order using
// package codec's framing.
package bytecode

import "github.com/ralakus/modlang/codec"

// ID is the common, opaque identifier that every per-module id newtype
// converts to and from. It exists so generic bookkeeping (e.g. a
// diagnostic referencing "some item") need not know which concrete id
// kind it is holding.
type ID uint64

// TypeID identifies a Type within a Module's types list.
type TypeID uint64

// GlobalID identifies a Global within a Module's globals list.
type GlobalID uint64

// FunctionID identifies a Function within a Module's functions list.
type FunctionID uint64

// LocalID identifies a local variable within a Function's frame.
type LocalID uint64

// ElementID identifies a field within a struct Type.
type ElementID uint64

// ID conversions. Every per-kind id is a plain uint64 newtype, so the
// conversions are lossless round trips through the opaque ID type.
func (t TypeID) ID() ID     { return ID(t) }
func (g GlobalID) ID() ID   { return ID(g) }
func (f FunctionID) ID() ID { return ID(f) }
func (l LocalID) ID() ID    { return ID(l) }
func (e ElementID) ID() ID  { return ID(e) }

func encodeID64(s *codec.Sink, v uint64) { codec.EncodeU64(s, v) }
func decodeID64(c *codec.Cursor) (uint64, error) { return codec.DecodeU64(c) }

func encodeTypeID(s *codec.Sink, v TypeID)     { encodeID64(s, uint64(v)) }
func encodeGlobalID(s *codec.Sink, v GlobalID)   { encodeID64(s, uint64(v)) }
func encodeFunctionID(s *codec.Sink, v FunctionID) { encodeID64(s, uint64(v)) }
func encodeLocalID(s *codec.Sink, v LocalID)    { encodeID64(s, uint64(v)) }
func encodeElementID(s *codec.Sink, v ElementID)  { encodeID64(s, uint64(v)) }

func decodeTypeID(c *codec.Cursor) (TypeID, error) {
	v, err := decodeID64(c)
	return TypeID(v), err
}
func decodeGlobalID(c *codec.Cursor) (GlobalID, error) {
	v, err := decodeID64(c)
	return GlobalID(v), err
}
func decodeFunctionID(c *codec.Cursor) (FunctionID, error) {
	v, err := decodeID64(c)
	return FunctionID(v), err
}
func decodeLocalID(c *codec.Cursor) (LocalID, error) {
	v, err := decodeID64(c)
	return LocalID(v), err
}
func decodeElementID(c *codec.Cursor) (ElementID, error) {
	v, err := decodeID64(c)
	return ElementID(v), err
}
