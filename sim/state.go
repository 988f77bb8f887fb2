package sim

import (
	"fmt"
	"math/big"
)

// State is a plain-data image of a simulator between rounds. Worry values
// are decimal strings so the image is independent of the big.Int encoding.
type State struct {
	Round   int           `msgpack:"round" json:"round"`
	Relief  uint64        `msgpack:"relief" json:"relief"`
	Modulus string        `msgpack:"modulus" json:"modulus"`
	Workers []WorkerState `msgpack:"workers" json:"workers"`
}

// WorkerState is the mutable part of one Worker.
type WorkerState struct {
	ID        int      `msgpack:"id" json:"id"`
	Items     []string `msgpack:"items" json:"items"`
	Inspected int64    `msgpack:"inspected" json:"inspected"`
}

// Snapshot captures the current queues and counters.
func (sim *Simulator) Snapshot() State {
	st := State{
		Round:   sim.round,
		Relief:  sim.Relief,
		Modulus: sim.Modulus.String(),
		Workers: make([]WorkerState, len(sim.Workers)),
	}
	for i, w := range sim.Workers {
		st.Workers[i] = WorkerState{ID: w.Definition.ID, Items: w.Queue.Strings(), Inspected: w.Inspected}
	}
	return st
}

// Restore rebuilds a simulator from the definitions it was created with and a
// State taken by Snapshot. The definitions' initial items are ignored; queues
// come from the state. Tracing is configured from cfg, relief from the state.
func Restore(defs []WorkerDefinition, st State, cfg SimConfig) (*Simulator, error) {
	cfg.Relief = st.Relief
	s, err := NewSimulator(defs, cfg)
	if err != nil {
		return nil, err
	}
	if st.Modulus != s.Modulus.String() {
		return nil, fmt.Errorf("%w: state modulus %s does not match definitions (%s)", ErrConfiguration, st.Modulus, s.Modulus)
	}
	if len(st.Workers) != len(s.Workers) {
		return nil, fmt.Errorf("%w: state has %d workers, definitions have %d", ErrConfiguration, len(st.Workers), len(s.Workers))
	}
	if st.Round < 0 {
		return nil, fmt.Errorf("%w: negative round %d", ErrConfiguration, st.Round)
	}
	for i, ws := range st.Workers {
		if ws.ID != i {
			return nil, fmt.Errorf("%w: state worker at position %d has id %d", ErrConfiguration, i, ws.ID)
		}
		if ws.Inspected < 0 {
			return nil, fmt.Errorf("%w: worker %d has negative inspection count", ErrConfiguration, i)
		}
		items := make([]*big.Int, len(ws.Items))
		for j, text := range ws.Items {
			v, ok := new(big.Int).SetString(text, 10)
			if !ok {
				return nil, fmt.Errorf("%w: worker %d item %d is not an integer: %q", ErrConfiguration, i, j, text)
			}
			items[j] = v
		}
		q, err := newItemQueue(items)
		if err != nil {
			return nil, fmt.Errorf("worker %d: %w", i, err)
		}
		s.Workers[i].Queue = q
		s.Workers[i].Inspected = ws.Inspected
	}
	s.round = st.Round
	return s, nil
}
