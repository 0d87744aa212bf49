package bytecode

import (
	"fmt"

	"github.com/ralakus/modlang/codec"
)

// IntrinsicType is a built-in scalar type. Tag values are contiguous,
// starting at 0, in this declared order (§3.2).
type IntrinsicType uint8

const (
	Void IntrinsicType = iota
	Bool
	U8
	U16
	U32
	U64
	S8
	S16
	S32
	S64
	F32
	F64

	maxIntrinsicType = F64
)

func (t IntrinsicType) String() string {
	switch t {
	case Void:
		return "void"
	case Bool:
		return "bool"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case S8:
		return "s8"
	case S16:
		return "s16"
	case S32:
		return "s32"
	case S64:
		return "s64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	default:
		return fmt.Sprintf("IntrinsicType(%d)", uint8(t))
	}
}

func (t IntrinsicType) encode(s *codec.Sink) { codec.EncodeU8(s, uint8(t)) }

func decodeIntrinsicType(c *codec.Cursor) (IntrinsicType, error) {
	tag, err := codec.DecodeTag(c, uint8(maxIntrinsicType))
	return IntrinsicType(tag), err
}

// TypeDataKind is the data-less tag of a TypeData variant.
type TypeDataKind uint8

const (
	TypeDataIntrinsic TypeDataKind = iota
	TypeDataPointer
	TypeDataStruct
	TypeDataFunction

	maxTypeDataKind = TypeDataFunction
)

func decodeTypeDataKind(c *codec.Cursor) (TypeDataKind, error) {
	tag, err := codec.DecodeTag(c, uint8(maxTypeDataKind))
	return TypeDataKind(tag), err
}

// TypeData is the variant payload of a Type. Exactly one of the fields
// named after Kind is meaningful; the others are zero.
//
//   - Kind == TypeDataIntrinsic: Intrinsic is set.
//   - Kind == TypeDataPointer:   Pointee is set.
//   - Kind == TypeDataStruct:    Fields is set (may be empty, never nil semantically).
//   - Kind == TypeDataFunction:  Parameters and (optionally) Result are set.
type TypeData struct {
	Kind       TypeDataKind
	Intrinsic  IntrinsicType
	Pointee    TypeID
	Fields     []TypeID
	Parameters []TypeID
	Result     *TypeID
}

// NewIntrinsicTypeData builds the TypeData for a built-in scalar type.
func NewIntrinsicTypeData(it IntrinsicType) TypeData {
	return TypeData{Kind: TypeDataIntrinsic, Intrinsic: it}
}

// NewPointerTypeData builds the TypeData for a pointer-to-type.
func NewPointerTypeData(pointee TypeID) TypeData {
	return TypeData{Kind: TypeDataPointer, Pointee: pointee}
}

// NewStructTypeData builds the TypeData for a struct-of-types.
func NewStructTypeData(fields []TypeID) TypeData {
	return TypeData{Kind: TypeDataStruct, Fields: fields}
}

// NewFunctionTypeData builds the TypeData for a function signature.
func NewFunctionTypeData(parameters []TypeID, result *TypeID) TypeData {
	return TypeData{Kind: TypeDataFunction, Parameters: parameters, Result: result}
}

// Equal reports structural equality, the relation anonymous-type
// interning (ctxgraph) canonicalizes on.
func (d TypeData) Equal(other TypeData) bool {
	if d.Kind != other.Kind {
		return false
	}
	switch d.Kind {
	case TypeDataIntrinsic:
		return d.Intrinsic == other.Intrinsic
	case TypeDataPointer:
		return d.Pointee == other.Pointee
	case TypeDataStruct:
		return equalTypeIDs(d.Fields, other.Fields)
	case TypeDataFunction:
		if !equalTypeIDs(d.Parameters, other.Parameters) {
			return false
		}
		if (d.Result == nil) != (other.Result == nil) {
			return false
		}
		return d.Result == nil || *d.Result == *other.Result
	default:
		return false
	}
}

func equalTypeIDs(a, b []TypeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (d TypeData) encode(s *codec.Sink) {
	codec.EncodeTag(s, uint8(d.Kind))
	switch d.Kind {
	case TypeDataIntrinsic:
		d.Intrinsic.encode(s)
	case TypeDataPointer:
		encodeTypeID(s, d.Pointee)
	case TypeDataStruct:
		codec.EncodeSeq(s, d.Fields, encodeTypeID)
	case TypeDataFunction:
		codec.EncodeSeq(s, d.Parameters, encodeTypeID)
		codec.EncodeOption(s, d.Result, encodeTypeID)
	}
}

func decodeTypeData(c *codec.Cursor) (TypeData, error) {
	kind, err := decodeTypeDataKind(c)
	if err != nil {
		return TypeData{}, err
	}
	switch kind {
	case TypeDataIntrinsic:
		it, err := decodeIntrinsicType(c)
		if err != nil {
			return TypeData{}, err
		}
		return NewIntrinsicTypeData(it), nil
	case TypeDataPointer:
		id, err := decodeTypeID(c)
		if err != nil {
			return TypeData{}, err
		}
		return NewPointerTypeData(id), nil
	case TypeDataStruct:
		fields, err := codec.DecodeSeq(c, decodeTypeID)
		if err != nil {
			return TypeData{}, err
		}
		return NewStructTypeData(fields), nil
	case TypeDataFunction:
		params, err := codec.DecodeSeq(c, decodeTypeID)
		if err != nil {
			return TypeData{}, err
		}
		result, err := codec.DecodeOption(c, decodeTypeID)
		if err != nil {
			return TypeData{}, err
		}
		return NewFunctionTypeData(params, result), nil
	default:
		return TypeData{}, codec.ErrUnexpectedValue
	}
}

// Type is a type definition belonging to a Module.
type Type struct {
	ID   TypeID
	Data TypeData
}

func (t Type) encode(s *codec.Sink) {
	encodeTypeID(s, t.ID)
	t.Data.encode(s)
}

func decodeType(c *codec.Cursor) (Type, error) {
	id, err := decodeTypeID(c)
	if err != nil {
		return Type{}, err
	}
	data, err := decodeTypeData(c)
	if err != nil {
		return Type{}, err
	}
	return Type{ID: id, Data: data}, nil
}
