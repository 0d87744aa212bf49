package bytecode

import "github.com/ralakus/modlang/codec"

// Global is a global variable definition: its type and the instruction
// sequence that computes its initial value.
type Global struct {
	ID          GlobalID
	Type        TypeID
	Initializer []Instruction
}

// NewGlobal returns an empty Global with no initializer.
func NewGlobal(id GlobalID, ty TypeID) Global {
	return Global{ID: id, Type: ty}
}

func (g Global) encode(s *codec.Sink) {
	encodeGlobalID(s, g.ID)
	encodeTypeID(s, g.Type)
	EncodeInstructions(s, g.Initializer)
}

func decodeGlobal(c *codec.Cursor) (Global, error) {
	id, err := decodeGlobalID(c)
	if err != nil {
		return Global{}, err
	}
	ty, err := decodeTypeID(c)
	if err != nil {
		return Global{}, err
	}
	init, err := DecodeInstructions(c)
	if err != nil {
		return Global{}, err
	}
	return Global{ID: id, Type: ty, Initializer: init}, nil
}

// Function is a function definition: its signature type and body.
type Function struct {
	ID   FunctionID
	Type TypeID
	Body []Instruction
}

// NewFunction returns an empty Function with no body.
func NewFunction(id FunctionID, ty TypeID) Function {
	return Function{ID: id, Type: ty}
}

func (f Function) encode(s *codec.Sink) {
	encodeFunctionID(s, f.ID)
	encodeTypeID(s, f.Type)
	EncodeInstructions(s, f.Body)
}

func decodeFunction(c *codec.Cursor) (Function, error) {
	id, err := decodeFunctionID(c)
	if err != nil {
		return Function{}, err
	}
	ty, err := decodeTypeID(c)
	if err != nil {
		return Function{}, err
	}
	body, err := DecodeInstructions(c)
	if err != nil {
		return Function{}, err
	}
	return Function{ID: id, Type: ty, Body: body}, nil
}
