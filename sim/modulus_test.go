package sim

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeModulus_ExampleIsProductOfPrimes(t *testing.T) {
	got := ComputeModulus(exampleDefinitions())
	assert.Equal(t, "96577", got.String()) // 23 * 19 * 13 * 17
}

func TestComputeModulus_IsLeastCommonMultiple(t *testing.T) {
	tests := []struct {
		divisors []uint64
		want     int64
	}{
		{[]uint64{2, 4}, 4},
		{[]uint64{4, 2}, 4},
		{[]uint64{4, 6}, 12},
		{[]uint64{3, 3, 3}, 3},
		{[]uint64{1}, 1},
		{[]uint64{6, 10, 15}, 30},
	}
	for _, tc := range tests {
		defs := make([]WorkerDefinition, len(tc.divisors))
		for i, d := range tc.divisors {
			defs[i] = WorkerDefinition{ID: i, Divisor: d}
		}
		assert.Equal(t, big.NewInt(tc.want).String(), ComputeModulus(defs).String(), "divisors %v", tc.divisors)
	}
}

func TestComputeModulus_PreservesEveryDivisibilityTest(t *testing.T) {
	// GIVEN the example modulus and random values far beyond it
	defs := exampleDefinitions()
	modulus := ComputeModulus(defs)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		v := new(big.Int).Rand(rng, new(big.Int).Lsh(big.NewInt(1), 128))
		reduced := new(big.Int).Mod(v, modulus)
		for _, def := range defs {
			d := new(big.Int).SetUint64(def.Divisor)
			// THEN v mod d == (v mod M) mod d
			want := new(big.Int).Mod(v, d)
			got := new(big.Int).Mod(reduced, d)
			if want.Cmp(got) != 0 {
				t.Fatalf("v=%s d=%d: v mod d = %s, (v mod M) mod d = %s", v, def.Divisor, want, got)
			}
		}
	}
}
