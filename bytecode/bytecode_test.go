package bytecode

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ralakus/modlang/codec"
	"github.com/stretchr/testify/require"
)

func one(v TypeID) *TypeID { return &v }

// TestModuleRoundTrip is scenario S1 from SPEC_FULL.md.
func TestModuleRoundTrip(t *testing.T) {
	module := Module{
		Name:    "test_module",
		Version: NewVersion(0, 0, 1),
		Types: []Type{
			{ID: 0, Data: NewIntrinsicTypeData(S64)},
			{ID: 1, Data: NewFunctionTypeData([]TypeID{0, 0}, one(0))},
			{ID: 2, Data: NewFunctionTypeData(nil, one(0))},
		},
		Imports: []ImportModule{
			{
				Name:    "test_import_module",
				Version: NewVersion(1, 2, 0),
				Items: []Import{
					{Name: "test_import_namespace", Data: NewImportNamespace([]Import{
						{Name: "test_import_global", Data: NewImportGlobal(0, 0)},
					})},
					{Name: "test_import_function", Data: NewImportFunction(0, 1)},
				},
			},
		},
		Globals: []Global{
			{ID: 1, Type: 0, Initializer: []Instruction{ImmediateValueInstr(ImmS64(99))}},
			{ID: 2, Type: 0, Initializer: []Instruction{CallDirectInstr(1)}},
		},
		Functions: []Function{
			{
				ID:   1,
				Type: 2,
				Body: []Instruction{
					GlobalAddressInstr(1),
					I(Load),
					ImmediateValueInstr(ImmS64(1)),
					CallDirectInstr(2),
					I(Return),
				},
			},
			{
				ID:   2,
				Type: 1,
				Body: []Instruction{
					LocalAddressInstr(0),
					LocalAddressInstr(1),
					I(Sub),
					I(Return),
				},
			},
		},
		Exports: []Export{
			{Name: "test_export_namespace", Data: NewExportNamespace([]Export{
				{Name: "test_export_function", Data: NewExportFunction(1)},
			})},
			{Name: "test_export_global", Data: NewExportGlobal(1)},
			{Name: "test_reexport", Data: NewExportGlobal(0)},
		},
	}

	encoded := EncodeModule(module)
	decoded, err := DecodeModuleBytes(encoded)
	require.NoError(t, err)
	if diff := cmp.Diff(module, decoded); diff != "" {
		t.Fatalf("module did not round trip (-want +got):\n%s", diff)
	}
}

// TestNestedBlockRoundTrip is scenario S4: a deeply nested IfBlock/LoopBlock.
func TestNestedBlockRoundTrip(t *testing.T) {
	instrs := []Instruction{
		I(NoOp),
		ImmediateValueInstr(ImmS32(99)),
		CreateLocalInstr(64),
		LocalAddressInstr(12),
		GlobalAddressInstr(13),
		FunctionAddressInstr(14),
		GetElementInstr(55),
		CastInstr(11),
		I(Load),
		I(Store),
		I(Discard),
		I(Add), I(Sub), I(Mul), I(Div), I(Rem), I(Neg),
		I(And), I(Or), I(Xor), I(LShift), I(RShift), I(Not),
		I(EQ), I(NEQ), I(LT), I(GT), I(LEQ), I(GEQ),
		CallDirectInstr(4),
		I(CallIndirect),
		IfBlockInstr(
			[]Instruction{
				GetElementInstr(55), CastInstr(11), I(Return), I(ReturnVoid), I(Load), I(Store),
				IfBlockInstr(
					[]Instruction{I(Div), I(Rem), I(Return), I(ReturnVoid), I(NoOp), I(Neg)},
					[]Instruction{I(EQ), I(NoOp), I(Return), I(ReturnVoid), ImmediateValueInstr(ImmS32(99)), I(NEQ), I(LT)},
				),
			},
			[]Instruction{
				I(LShift), I(RShift), I(Not), FunctionAddressInstr(14), I(Return), I(ReturnVoid),
				GetElementInstr(55), CastInstr(11),
				LoopBlockInstr([]Instruction{
					I(NoOp), I(Return), I(ReturnVoid), ImmediateValueInstr(ImmS32(99)), CreateLocalInstr(64),
					IfBlockInstr(
						[]Instruction{I(Div), I(Rem), I(Neg)},
						[]Instruction{I(EQ), I(NEQ), I(LT)},
					),
				}),
			},
		),
		LoopBlockInstr([]Instruction{
			I(LShift), I(RShift), I(Not), FunctionAddressInstr(14),
			IfBlockInstr(
				[]Instruction{I(Div), I(Neg), I(Rem)},
				[]Instruction{I(NEQ), I(EQ), I(Break), I(LT)},
			),
			I(Break),
		}),
		I(Break), I(Continue),
		I(Return), I(ReturnVoid),
	}

	s := codec.NewSink()
	EncodeInstructions(s, instrs)

	decoded, err := DecodeInstructions(codec.NewCursor(s.Bytes()))
	require.NoError(t, err)
	if diff := cmp.Diff(instrs, decoded); diff != "" {
		t.Fatalf("instructions did not round trip (-want +got):\n%s", diff)
	}
}

// TestTagRangeRejection is scenario S2: 0xFF is rejected for every tagged
// sum type.
func TestTagRangeRejection(t *testing.T) {
	bad := []byte{0xFF}

	_, err := decodeTypeDataKind(codec.NewCursor(bad))
	require.ErrorIs(t, err, codec.ErrUnexpectedValue)

	_, err = decodeIntrinsicType(codec.NewCursor(bad))
	require.ErrorIs(t, err, codec.ErrUnexpectedValue)

	_, err = decodeAliasDataKind(codec.NewCursor(bad))
	require.ErrorIs(t, err, codec.ErrUnexpectedValue)

	_, err = decodeInstructionKind(codec.NewCursor(bad))
	require.ErrorIs(t, err, codec.ErrUnexpectedValue)
}

// TestVoidImmediateRejected is scenario S3.
func TestVoidImmediateRejected(t *testing.T) {
	s := codec.NewSink()
	Void.encode(s)
	_, err := decodeImmediateValue(codec.NewCursor(s.Bytes()))
	require.ErrorIs(t, err, codec.ErrUnexpectedValue)
}

func TestTruncatedInputIsEOF(t *testing.T) {
	s := codec.NewSink()
	codec.EncodeString(s, "hello")
	truncated := s.Bytes()[:3]
	_, err := codec.DecodeString(codec.NewCursor(truncated))
	require.ErrorIs(t, err, codec.ErrEOF)
}

func TestInvalidUTF8IsRejected(t *testing.T) {
	s := codec.NewSink()
	codec.EncodeUsize(s, 2)
	bad := append(s.Bytes(), 0xFF, 0xFE)
	_, err := codec.DecodeString(codec.NewCursor(bad))
	require.ErrorIs(t, err, codec.ErrInvalidString)
}

// TestRandomModuleRoundTrip is the quantified property from §8.1: for
// randomly generated, bounded-size modules, decode(encode(v)) == v.
func TestRandomModuleRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 64; i++ {
		m := randomModule(rng, 8)
		encoded := EncodeModule(m)
		decoded, err := DecodeModuleBytes(encoded)
		require.NoError(t, err)
		if diff := cmp.Diff(m, decoded); diff != "" {
			t.Fatalf("iteration %d: module did not round trip (-want +got):\n%s", i, diff)
		}
	}
}

func randomModule(rng *rand.Rand, maxItems int) Module {
	n := func() int { return rng.Intn(maxItems) }

	types := make([]Type, 0)
	for i := 0; i < n(); i++ {
		types = append(types, Type{ID: TypeID(i), Data: NewIntrinsicTypeData(IntrinsicType(rng.Intn(12)))})
	}

	globals := make([]Global, 0)
	for i := 0; i < n(); i++ {
		globals = append(globals, Global{
			ID:          GlobalID(i),
			Type:        TypeID(rng.Intn(len(types) + 1)),
			Initializer: []Instruction{ImmediateValueInstr(ImmS32(rng.Int31()))},
		})
	}

	functions := make([]Function, 0)
	for i := 0; i < n(); i++ {
		functions = append(functions, Function{
			ID:   FunctionID(i),
			Type: TypeID(rng.Intn(len(types) + 1)),
			Body: []Instruction{I(NoOp), I(ReturnVoid)},
		})
	}

	return Module{
		Name:      "random_module",
		Version:   NewVersion(0, 1, 0),
		Types:     types,
		Imports:   make([]ImportModule, 0),
		Globals:   globals,
		Functions: functions,
		Exports:   make([]Export, 0),
	}
}
