package sim

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrConfiguration marks fatal, non-retriable problems with the worker set.
var ErrConfiguration = errors.New("configuration error")

// WorkerDefinition is the immutable description of one worker, as produced by
// a loader in sim/input. Definitions are never mutated after construction;
// the simulator copies InitialItems when seeding queues.
type WorkerDefinition struct {
	ID           int        // position in evaluation order, dense 0..N-1
	InitialItems []*big.Int // starting worry values, in queue order
	Transform    Transform
	Divisor      uint64 // divisibility test value (must be > 0)
	PassTarget   int    // receives the item when the test passes
	FailTarget   int    // receives the item otherwise
}

// Target returns the worker id an item with the given (already transformed)
// worry value is routed to.
func (d *WorkerDefinition) Target(v *big.Int) int {
	rem := new(big.Int).Mod(v, new(big.Int).SetUint64(d.Divisor))
	if rem.Sign() == 0 {
		return d.PassTarget
	}
	return d.FailTarget
}

// ValidateDefinitions checks the structural invariants the simulator relies on.
// Every failure wraps ErrConfiguration.
func ValidateDefinitions(defs []WorkerDefinition) error {
	if len(defs) == 0 {
		return fmt.Errorf("%w: no workers defined", ErrConfiguration)
	}
	seen := make(map[int]bool, len(defs))
	for i, def := range defs {
		if seen[def.ID] {
			return fmt.Errorf("%w: duplicate worker id %d", ErrConfiguration, def.ID)
		}
		seen[def.ID] = true
		if def.ID != i {
			return fmt.Errorf("%w: worker ids must be dense and ascending, got id %d at position %d", ErrConfiguration, def.ID, i)
		}
		if def.Divisor == 0 {
			return fmt.Errorf("%w: worker %d has a zero divisor", ErrConfiguration, def.ID)
		}
		for _, target := range []int{def.PassTarget, def.FailTarget} {
			if target < 0 || target >= len(defs) {
				return fmt.Errorf("%w: worker %d routes to unknown worker %d", ErrConfiguration, def.ID, target)
			}
			// A worker throwing to itself would never drain its own queue.
			if target == def.ID {
				return fmt.Errorf("%w: worker %d routes to itself", ErrConfiguration, def.ID)
			}
		}
		for j, item := range def.InitialItems {
			if item == nil || item.Sign() < 0 {
				return fmt.Errorf("%w: worker %d item %d must be a non-negative integer", ErrConfiguration, def.ID, j)
			}
		}
	}
	return nil
}
