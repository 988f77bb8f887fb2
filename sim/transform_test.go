package sim

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform_Apply_AllKinds(t *testing.T) {
	tests := []struct {
		name string
		tr   Transform
		in   int64
		want int64
	}{
		{"add constant", Transform{Kind: AddConstant, Operand: 6}, 54, 60},
		{"add self", Transform{Kind: AddSelf}, 21, 42},
		{"multiply constant", Transform{Kind: MultiplyConstant, Operand: 19}, 79, 1501},
		{"multiply self", Transform{Kind: MultiplySelf}, 79, 6241},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := big.NewInt(tc.in)
			got := tc.tr.Apply(in)
			assert.Equal(t, big.NewInt(tc.want).String(), got.String())
			assert.Equal(t, tc.in, in.Int64(), "Apply must not modify its input")
		})
	}
}

func TestTransform_Apply_BeyondMachineWidth(t *testing.T) {
	// GIVEN a value whose square exceeds 64 bits
	v := new(big.Int).Lsh(big.NewInt(1), 40)

	// WHEN squared
	got := Transform{Kind: MultiplySelf}.Apply(v)

	// THEN the result is exact
	want := new(big.Int).Lsh(big.NewInt(1), 80)
	assert.Equal(t, want.String(), got.String())
}

func TestTransform_Apply_UnknownKindPanics(t *testing.T) {
	assert.Panics(t, func() {
		Transform{Kind: TransformKind(42)}.Apply(big.NewInt(1))
	})
}

func TestNewTransform(t *testing.T) {
	tests := []struct {
		op, arg string
		want    Transform
	}{
		{"+", "6", Transform{Kind: AddConstant, Operand: 6}},
		{"+", "old", Transform{Kind: AddSelf}},
		{"*", "19", Transform{Kind: MultiplyConstant, Operand: 19}},
		{"*", "old", Transform{Kind: MultiplySelf}},
	}
	for _, tc := range tests {
		got, err := NewTransform(tc.op, tc.arg)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestNewTransform_Invalid(t *testing.T) {
	for _, tc := range [][2]string{{"-", "3"}, {"/", "old"}, {"*", "x"}, {"+", "-1"}} {
		_, err := NewTransform(tc[0], tc[1])
		assert.True(t, errors.Is(err, ErrInvalidTransform), "NewTransform(%q, %q) error = %v", tc[0], tc[1], err)
	}
}

func TestParseTransform_RoundTripsString(t *testing.T) {
	for _, expr := range []string{"old * 19", "old + 6", "old * old", "old + old"} {
		tr, err := ParseTransform(expr)
		require.NoError(t, err)
		assert.Equal(t, expr, tr.String())
	}
}

func TestParseTransform_AcceptsAssignmentForm(t *testing.T) {
	tr, err := ParseTransform("new = old * old")
	require.NoError(t, err)
	assert.Equal(t, Transform{Kind: MultiplySelf}, tr)
}

func TestParseTransform_RejectsMalformed(t *testing.T) {
	for _, expr := range []string{"", "old *", "new = 3 * old", "old ^ 2", "x = old + 1"} {
		_, err := ParseTransform(expr)
		assert.ErrorIs(t, err, ErrInvalidTransform, "expr %q", expr)
	}
}
