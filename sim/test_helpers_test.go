package sim

import (
	"math/big"
	"testing"
)

// items converts small literals into worry values.
func items(vs ...int64) []*big.Int {
	out := make([]*big.Int, len(vs))
	for i, v := range vs {
		out[i] = big.NewInt(v)
	}
	return out
}

// exampleDefinitions returns the canonical four-worker keep-away example.
func exampleDefinitions() []WorkerDefinition {
	return []WorkerDefinition{
		{ID: 0, InitialItems: items(79, 98), Transform: Transform{Kind: MultiplyConstant, Operand: 19}, Divisor: 23, PassTarget: 2, FailTarget: 3},
		{ID: 1, InitialItems: items(54, 65, 75, 74), Transform: Transform{Kind: AddConstant, Operand: 6}, Divisor: 19, PassTarget: 2, FailTarget: 0},
		{ID: 2, InitialItems: items(79, 60, 97), Transform: Transform{Kind: MultiplySelf}, Divisor: 13, PassTarget: 1, FailTarget: 3},
		{ID: 3, InitialItems: items(74), Transform: Transform{Kind: AddConstant, Operand: 3}, Divisor: 17, PassTarget: 0, FailTarget: 1},
	}
}

// chain returns workers that all pass every item (divisor 1) along the given
// targets; worker i starts with the items in start[i].
func chain(targets []int, start map[int][]int64) []WorkerDefinition {
	defs := make([]WorkerDefinition, len(targets))
	for i, target := range targets {
		defs[i] = WorkerDefinition{
			ID:           i,
			InitialItems: items(start[i]...),
			Transform:    Transform{Kind: AddConstant, Operand: 1},
			Divisor:      1,
			PassTarget:   target,
			FailTarget:   target,
		}
	}
	return defs
}

func mustSimulator(t *testing.T, defs []WorkerDefinition, cfg SimConfig) *Simulator {
	t.Helper()
	s, err := NewSimulator(defs, cfg)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return s
}
