package sim

import "math/big"

// ComputeModulus returns the least common multiple of every worker's divisor.
// Reducing a worry value modulo the result never changes the outcome of any
// worker's divisibility test: v mod d == (v mod M) mod d for each divisor d.
//
// The accumulator only grows when it is not already a multiple of the next
// divisor; for the prime divisors the notes use this is a plain product.
// Zero divisors are skipped; callers validate definitions first.
func ComputeModulus(defs []WorkerDefinition) *big.Int {
	acc := big.NewInt(1)
	rem := new(big.Int)
	for _, def := range defs {
		if def.Divisor == 0 {
			continue
		}
		d := new(big.Int).SetUint64(def.Divisor)
		if rem.Mod(acc, d).Sign() == 0 {
			continue
		}
		g := new(big.Int).GCD(nil, nil, acc, d)
		acc.Mul(acc, d.Quo(d, g))
	}
	return acc
}
