package bytecode

import "github.com/ralakus/modlang/codec"

// InstructionKind is the data-less tag of an Instruction. Tag values are
// contiguous starting at 0 in this declared order (§4.2, §6.1).
type InstructionKind uint8

const (
	NoOp InstructionKind = iota

	ImmediateValueOp

	CreateLocal

	LocalAddress
	GlobalAddress
	FunctionAddress

	GetElement

	Cast

	Load
	Store

	Discard

	Add
	Sub
	Mul
	Div
	Rem
	Neg

	And
	Or
	Xor
	LShift
	RShift
	Not

	EQ
	NEQ
	LT
	GT
	LEQ
	GEQ

	CallDirect

	CallIndirect

	IfBlock

	LoopBlock

	Break
	Continue

	Return
	ReturnVoid

	maxInstructionKind = ReturnVoid
)

func decodeInstructionKind(c *codec.Cursor) (InstructionKind, error) {
	tag, err := codec.DecodeTag(c, uint8(maxInstructionKind))
	return InstructionKind(tag), err
}

// Instruction is a single stack-machine operation. Like TypeData, only
// the fields relevant to Kind are meaningful.
type Instruction struct {
	Kind InstructionKind

	Immediate ImmediateValue

	TypeOperand     TypeID
	LocalOperand    LocalID
	GlobalOperand   GlobalID
	FunctionOperand FunctionID
	ElementOperand  ElementID

	Then []Instruction
	Else []Instruction
	Body []Instruction
}

// Simple no-operand instruction constructors, for convenience and to
// keep call sites free of zero-value field literals.
func I(kind InstructionKind) Instruction { return Instruction{Kind: kind} }

func ImmediateValueInstr(v ImmediateValue) Instruction {
	return Instruction{Kind: ImmediateValueOp, Immediate: v}
}
func CreateLocalInstr(t TypeID) Instruction     { return Instruction{Kind: CreateLocal, TypeOperand: t} }
func LocalAddressInstr(l LocalID) Instruction   { return Instruction{Kind: LocalAddress, LocalOperand: l} }
func GlobalAddressInstr(g GlobalID) Instruction { return Instruction{Kind: GlobalAddress, GlobalOperand: g} }
func FunctionAddressInstr(f FunctionID) Instruction {
	return Instruction{Kind: FunctionAddress, FunctionOperand: f}
}
func GetElementInstr(e ElementID) Instruction { return Instruction{Kind: GetElement, ElementOperand: e} }
func CastInstr(t TypeID) Instruction          { return Instruction{Kind: Cast, TypeOperand: t} }
func CallDirectInstr(f FunctionID) Instruction {
	return Instruction{Kind: CallDirect, FunctionOperand: f}
}
func IfBlockInstr(then, els []Instruction) Instruction {
	return Instruction{Kind: IfBlock, Then: then, Else: els}
}
func LoopBlockInstr(body []Instruction) Instruction { return Instruction{Kind: LoopBlock, Body: body} }

func (in Instruction) encode(s *codec.Sink) {
	codec.EncodeTag(s, uint8(in.Kind))
	switch in.Kind {
	case NoOp, Load, Store, Discard,
		Add, Sub, Mul, Div, Rem, Neg,
		And, Or, Xor, LShift, RShift, Not,
		EQ, NEQ, LT, GT, LEQ, GEQ,
		CallIndirect, Break, Continue, Return, ReturnVoid:
		// no operands

	case ImmediateValueOp:
		in.Immediate.encode(s)

	case CreateLocal:
		encodeTypeID(s, in.TypeOperand)
	case LocalAddress:
		encodeLocalID(s, in.LocalOperand)
	case GlobalAddress:
		encodeGlobalID(s, in.GlobalOperand)
	case FunctionAddress:
		encodeFunctionID(s, in.FunctionOperand)
	case GetElement:
		encodeElementID(s, in.ElementOperand)
	case Cast:
		encodeTypeID(s, in.TypeOperand)
	case CallDirect:
		encodeFunctionID(s, in.FunctionOperand)

	case IfBlock:
		codec.EncodeSeq(s, in.Then, func(s *codec.Sink, i Instruction) { i.encode(s) })
		codec.EncodeSeq(s, in.Else, func(s *codec.Sink, i Instruction) { i.encode(s) })

	case LoopBlock:
		codec.EncodeSeq(s, in.Body, func(s *codec.Sink, i Instruction) { i.encode(s) })
	}
}

func decodeInstruction(c *codec.Cursor) (Instruction, error) {
	kind, err := decodeInstructionKind(c)
	if err != nil {
		return Instruction{}, err
	}
	switch kind {
	case NoOp, Load, Store, Discard,
		Add, Sub, Mul, Div, Rem, Neg,
		And, Or, Xor, LShift, RShift, Not,
		EQ, NEQ, LT, GT, LEQ, GEQ,
		CallIndirect, Break, Continue, Return, ReturnVoid:
		return I(kind), nil

	case ImmediateValueOp:
		v, err := decodeImmediateValue(c)
		if err != nil {
			return Instruction{}, err
		}
		return ImmediateValueInstr(v), nil

	case CreateLocal:
		v, err := decodeTypeID(c)
		if err != nil {
			return Instruction{}, err
		}
		return CreateLocalInstr(v), nil

	case LocalAddress:
		v, err := decodeLocalID(c)
		if err != nil {
			return Instruction{}, err
		}
		return LocalAddressInstr(v), nil

	case GlobalAddress:
		v, err := decodeGlobalID(c)
		if err != nil {
			return Instruction{}, err
		}
		return GlobalAddressInstr(v), nil

	case FunctionAddress:
		v, err := decodeFunctionID(c)
		if err != nil {
			return Instruction{}, err
		}
		return FunctionAddressInstr(v), nil

	case GetElement:
		v, err := decodeElementID(c)
		if err != nil {
			return Instruction{}, err
		}
		return GetElementInstr(v), nil

	case Cast:
		v, err := decodeTypeID(c)
		if err != nil {
			return Instruction{}, err
		}
		return CastInstr(v), nil

	case CallDirect:
		v, err := decodeFunctionID(c)
		if err != nil {
			return Instruction{}, err
		}
		return CallDirectInstr(v), nil

	case IfBlock:
		then, err := codec.DecodeSeq(c, decodeInstruction)
		if err != nil {
			return Instruction{}, err
		}
		els, err := codec.DecodeSeq(c, decodeInstruction)
		if err != nil {
			return Instruction{}, err
		}
		return IfBlockInstr(then, els), nil

	case LoopBlock:
		body, err := codec.DecodeSeq(c, decodeInstruction)
		if err != nil {
			return Instruction{}, err
		}
		return LoopBlockInstr(body), nil

	default:
		return Instruction{}, codec.ErrUnexpectedValue
	}
}

// EncodeInstructions encodes a sequence of instructions (a block body).
func EncodeInstructions(s *codec.Sink, instrs []Instruction) {
	codec.EncodeSeq(s, instrs, func(s *codec.Sink, i Instruction) { i.encode(s) })
}

// DecodeInstructions decodes a sequence of instructions (a block body).
func DecodeInstructions(c *codec.Cursor) ([]Instruction, error) {
	return codec.DecodeSeq(c, decodeInstruction)
}

// ImmediateValue is a tagged literal carrying its IntrinsicType and
// payload. Void is never a valid immediate.
type ImmediateValue struct {
	Type IntrinsicType

	BoolValue bool
	U8Value   uint8
	U16Value  uint16
	U32Value  uint32
	U64Value  uint64
	S8Value   int8
	S16Value  int16
	S32Value  int32
	S64Value  int64
	F32Value  float32
	F64Value  float64
}

func ImmBool(v bool) ImmediateValue    { return ImmediateValue{Type: Bool, BoolValue: v} }
func ImmU8(v uint8) ImmediateValue     { return ImmediateValue{Type: U8, U8Value: v} }
func ImmU16(v uint16) ImmediateValue   { return ImmediateValue{Type: U16, U16Value: v} }
func ImmU32(v uint32) ImmediateValue   { return ImmediateValue{Type: U32, U32Value: v} }
func ImmU64(v uint64) ImmediateValue   { return ImmediateValue{Type: U64, U64Value: v} }
func ImmS8(v int8) ImmediateValue      { return ImmediateValue{Type: S8, S8Value: v} }
func ImmS16(v int16) ImmediateValue    { return ImmediateValue{Type: S16, S16Value: v} }
func ImmS32(v int32) ImmediateValue    { return ImmediateValue{Type: S32, S32Value: v} }
func ImmS64(v int64) ImmediateValue    { return ImmediateValue{Type: S64, S64Value: v} }
func ImmF32(v float32) ImmediateValue  { return ImmediateValue{Type: F32, F32Value: v} }
func ImmF64(v float64) ImmediateValue  { return ImmediateValue{Type: F64, F64Value: v} }

func (v ImmediateValue) encode(s *codec.Sink) {
	v.Type.encode(s)
	switch v.Type {
	case Bool:
		codec.EncodeBool(s, v.BoolValue)
	case U8:
		codec.EncodeU8(s, v.U8Value)
	case U16:
		codec.EncodeU16(s, v.U16Value)
	case U32:
		codec.EncodeU32(s, v.U32Value)
	case U64:
		codec.EncodeU64(s, v.U64Value)
	case S8:
		codec.EncodeI8(s, v.S8Value)
	case S16:
		codec.EncodeI16(s, v.S16Value)
	case S32:
		codec.EncodeI32(s, v.S32Value)
	case S64:
		codec.EncodeI64(s, v.S64Value)
	case F32:
		codec.EncodeF32(s, v.F32Value)
	case F64:
		codec.EncodeF64(s, v.F64Value)
	}
}

func decodeImmediateValue(c *codec.Cursor) (ImmediateValue, error) {
	it, err := decodeIntrinsicType(c)
	if err != nil {
		return ImmediateValue{}, err
	}
	switch it {
	case Bool:
		v, err := codec.DecodeBool(c)
		return ImmBool(v), err
	case U8:
		v, err := codec.DecodeU8(c)
		return ImmU8(v), err
	case U16:
		v, err := codec.DecodeU16(c)
		return ImmU16(v), err
	case U32:
		v, err := codec.DecodeU32(c)
		return ImmU32(v), err
	case U64:
		v, err := codec.DecodeU64(c)
		return ImmU64(v), err
	case S8:
		v, err := codec.DecodeI8(c)
		return ImmS8(v), err
	case S16:
		v, err := codec.DecodeI16(c)
		return ImmS16(v), err
	case S32:
		v, err := codec.DecodeI32(c)
		return ImmS32(v), err
	case S64:
		v, err := codec.DecodeI64(c)
		return ImmS64(v), err
	case F32:
		v, err := codec.DecodeF32(c)
		return ImmF32(v), err
	case F64:
		v, err := codec.DecodeF64(c)
		return ImmF64(v), err
	case Void:
		return ImmediateValue{}, codec.ErrUnexpectedValue
	default:
		return ImmediateValue{}, codec.ErrUnexpectedValue
	}
}
