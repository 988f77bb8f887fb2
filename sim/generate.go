package sim

import (
	"fmt"
	"math/big"
)

// generatorPrimes are the divisors generated workers test against.
var generatorPrimes = []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// GenerateDefinitions builds a random but valid set of n workers.
// Divisors are drawn from small primes, targets never point back at the
// thrower, and each worker starts with 0 to 5 items below 100.
func GenerateDefinitions(key GeneratorKey, n int) ([]WorkerDefinition, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 workers to route between, got %d", ErrConfiguration, n)
	}
	rng := NewPartitionedRNG(key)
	itemsRNG := rng.ForSubsystem(SubsystemItems)
	transformRNG := rng.ForSubsystem(SubsystemTransforms)
	routingRNG := rng.ForSubsystem(SubsystemRouting)

	otherThan := func(id int) int {
		t := routingRNG.Intn(n - 1)
		if t >= id {
			t++
		}
		return t
	}

	defs := make([]WorkerDefinition, n)
	for id := range defs {
		items := make([]*big.Int, itemsRNG.Intn(6))
		for j := range items {
			items[j] = big.NewInt(int64(1 + itemsRNG.Intn(99)))
		}
		kind := TransformKind(transformRNG.Intn(4))
		var operand uint64
		if kind == AddConstant || kind == MultiplyConstant {
			operand = uint64(1 + transformRNG.Intn(9))
		}
		defs[id] = WorkerDefinition{
			ID:           id,
			InitialItems: items,
			Transform:    Transform{Kind: kind, Operand: operand},
			Divisor:      generatorPrimes[routingRNG.Intn(len(generatorPrimes))],
			PassTarget:   otherThan(id),
			FailTarget:   otherThan(id),
		}
	}
	return defs, ValidateDefinitions(defs)
}
