package sim

import "math/big"

// Worker is the runtime unit driven by one WorkerDefinition: a FIFO of items
// and a count of inspections performed so far. Workers refer to each other
// only by id; the Simulator owns all of them.
type Worker struct {
	Definition WorkerDefinition
	Queue      *ItemQueue
	Inspected  int64 // monotonically increasing, starts at 0
}

func newWorker(def WorkerDefinition) (*Worker, error) {
	q, err := newItemQueue(def.InitialItems)
	if err != nil {
		return nil, err
	}
	return &Worker{Definition: def, Queue: q}, nil
}

// Inspect computes where one item goes: the transform is evaluated at full
// precision, then either divided by relief (relief > 1) or reduced modulo the
// shared modulus, and the result is tested against the divisor.
// Inspect does not touch the queue or the counter; the Simulator records the
// inspection once the target is known to be valid.
func (w *Worker) Inspect(v, modulus *big.Int, relief uint64) (*big.Int, int) {
	next := w.Definition.Transform.Apply(v)
	if relief > 1 {
		next.Quo(next, new(big.Int).SetUint64(relief))
	} else {
		next.Mod(next, modulus)
	}
	return next, w.Definition.Target(next)
}
