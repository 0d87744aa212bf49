package lang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentifierSetRejectsOverlong(t *testing.T) {
	var id Identifier
	require.True(t, id.Set(strings.Repeat("a", MaxIdentifierLength)))
	require.False(t, id.Set(strings.Repeat("a", MaxIdentifierLength+1)))
	// a failed Set leaves the previous value untouched
	require.Equal(t, MaxIdentifierLength, id.Len())
}

func TestIdentifierSetRejectsNonASCII(t *testing.T) {
	var id Identifier
	require.False(t, id.Set("héllo"))
	require.True(t, id.IsEmpty())
}

func TestIdentifierAppendRespectsBound(t *testing.T) {
	var id Identifier
	require.True(t, id.Set(strings.Repeat("a", MaxIdentifierLength-1)))
	require.True(t, id.Append('z'))
	require.Equal(t, MaxIdentifierLength, id.Len())
	require.False(t, id.Append('z'))
}

func TestIdentifierAppendRejectsNonASCII(t *testing.T) {
	var id Identifier
	require.False(t, id.Append(0x80))
}

func TestIdentifierOrdering(t *testing.T) {
	a := NewIdentifier("alpha")
	b := NewIdentifier("beta")
	require.True(t, a.Compare(b) < 0)
	require.True(t, b.Compare(a) > 0)
	require.Equal(t, 0, a.Compare(NewIdentifier("alpha")))
	require.True(t, a.Equal(NewIdentifier("alpha")))
}

func TestFloatingPointClassification(t *testing.T) {
	require.Equal(t, FloatNaN, NewFloatingPoint(nanValue()).Kind)
	require.Equal(t, FloatInf, NewFloatingPoint(infValue()).Kind)
	require.Equal(t, FloatNorm, NewFloatingPoint(1.5).Kind)
}

func nanValue() float64 { var z float64; return z / z }
func infValue() float64 { return 1.0 / zero() }
func zero() float64     { var z float64; return z }

func TestIdentifierValuesAreLongestFirst(t *testing.T) {
	for i := 1; i < len(IdentifierValues); i++ {
		require.GreaterOrEqual(t, len(IdentifierValues[i-1].Text), len(IdentifierValues[i].Text),
			"entry %d (%q) is shorter than entry %d (%q)", i-1, IdentifierValues[i-1].Text, i, IdentifierValues[i].Text)
	}
}

func TestSymOperatorValuesAreLongestFirst(t *testing.T) {
	for i := 1; i < len(SymOperatorValues); i++ {
		require.GreaterOrEqual(t, len(SymOperatorValues[i-1].Text), len(SymOperatorValues[i].Text))
	}
}

func TestLookupSymOperatorValuePrefersLongestMatch(t *testing.T) {
	op, text, ok := LookupSymOperatorValue("::rest")
	require.True(t, ok)
	require.Equal(t, OpDoubleColon, op)
	require.Equal(t, "::", text)

	op, text, ok = LookupSymOperatorValue(":rest")
	require.True(t, ok)
	require.Equal(t, OpColon, op)
	require.Equal(t, ":", text)
}

func TestLookupIdentifierValue(t *testing.T) {
	data, ok := LookupIdentifierValue("import")
	require.True(t, ok)
	require.Equal(t, TokenKeyword, data.Kind)
	require.Equal(t, KwImport, data.Keyword)

	_, ok = LookupIdentifierValue("not_a_keyword")
	require.False(t, ok)
}

func TestBinaryPrecedenceOrdering(t *testing.T) {
	require.Less(t, BinaryPrecedence(OpAnd), BinaryPrecedence(OpEqual))
	require.Less(t, BinaryPrecedence(OpEqual), BinaryPrecedence(OpAdd))
	require.Less(t, BinaryPrecedence(OpAdd), BinaryPrecedence(OpMul))
	require.Less(t, BinaryPrecedence(OpMul), BinaryPrecedence(OpLeftParen))
}

func TestKeywordAndOperatorValuesRoundTripThroughTables(t *testing.T) {
	for _, e := range IdentifierValues {
		if e.Data.Kind == TokenKeyword {
			require.Equal(t, e.Text, e.Data.Keyword.Value())
		}
	}
	for _, e := range SymOperatorValues {
		require.Equal(t, e.Text, e.Op.Value())
	}
}
