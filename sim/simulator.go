// sim/simulator.go
package sim

import (
	"fmt"
	"math/big"

	"github.com/sirupsen/logrus"

	"github.com/keepaway-sim/keepaway-sim/sim/trace"
)

// Simulator owns every Worker, the shared modulus and the round counter.
// Rounds are executed strictly in sequence and workers strictly in ascending
// id order; a worker's queue is drained to empty before the next worker
// starts, so an item thrown forward to a higher id is inspected again in the
// same round while an item thrown back waits for the next round.
type Simulator struct {
	Workers []*Worker
	// Modulus is the LCM of all divisors, fixed before the first round.
	Modulus *big.Int
	Relief  uint64
	// Trace is nil unless SimConfig.Trace enables recording.
	Trace *trace.SimulationTrace
	round int
}

// NewSimulator validates the definitions, seeds one Worker per definition and
// computes the modulus.
func NewSimulator(defs []WorkerDefinition, cfg SimConfig) (*Simulator, error) {
	if err := ValidateDefinitions(defs); err != nil {
		return nil, err
	}
	if !trace.IsValidTraceLevel(string(cfg.Trace.Level)) {
		return nil, fmt.Errorf("%w: unknown trace level %q", ErrConfiguration, cfg.Trace.Level)
	}
	s := &Simulator{
		Workers: make([]*Worker, len(defs)),
		Modulus: ComputeModulus(defs),
		Relief:  cfg.relief(),
	}
	for i, def := range defs {
		w, err := newWorker(def)
		if err != nil {
			return nil, fmt.Errorf("worker %d: %w", def.ID, err)
		}
		s.Workers[i] = w
	}
	if cfg.Trace.Enabled() {
		s.Trace = trace.NewSimulationTrace(cfg.Trace)
	}
	logrus.Debugf("Simulator ready: %d workers, modulus=%s, relief=%d", len(s.Workers), s.Modulus, s.Relief)
	return s, nil
}

// Round returns the number of completed rounds.
func (sim *Simulator) Round() int {
	return sim.round
}

// RunRound executes one full round. Every worker's targets are checked
// before any item moves; a target outside the worker set fails the round
// with ErrConfiguration and leaves queues, counters and the round untouched.
func (sim *Simulator) RunRound() error {
	round := sim.round + 1
	for id, w := range sim.Workers {
		for _, target := range []int{w.Definition.PassTarget, w.Definition.FailTarget} {
			if target < 0 || target >= len(sim.Workers) {
				return fmt.Errorf("%w: round %d: worker %d routes to unknown worker %d", ErrConfiguration, round, id, target)
			}
		}
	}
	var before []int64
	if sim.Trace != nil {
		before = sim.InspectionCounts()
	}
	for id, w := range sim.Workers {
		for w.Queue.Len() > 0 {
			v := w.Queue.Dequeue()
			next, target := w.Inspect(v, sim.Modulus, sim.Relief)
			w.Inspected++
			logrus.Tracef("[round %05d] worker %d: %s -> %s, thrown to %d", round, id, v, next, target)
			if sim.Trace != nil {
				sim.Trace.RecordInspection(trace.InspectionRecord{
					Round:     round,
					Worker:    id,
					Before:    v.String(),
					After:     next.String(),
					Target:    target,
					SameRound: target > id,
				})
			}
			sim.Workers[target].Queue.Enqueue(next)
		}
	}
	sim.round = round
	if sim.Trace != nil {
		after := sim.InspectionCounts()
		for i := range after {
			after[i] -= before[i]
		}
		sim.Trace.RecordRound(trace.RoundRecord{Round: round, Inspections: after, TotalItems: sim.TotalItems()})
	}
	logrus.Debugf("[round %05d] complete, inspections=%v", round, sim.InspectionCounts())
	return nil
}

// Run executes the given number of rounds and returns the inspection count of
// every worker, indexed by worker id.
func (sim *Simulator) Run(rounds int) ([]int64, error) {
	if rounds < 1 {
		return nil, fmt.Errorf("rounds must be positive, got %d", rounds)
	}
	logrus.Infof("Starting simulation: %d rounds from round %d, %d workers, %d items", rounds, sim.round, len(sim.Workers), sim.TotalItems())
	for r := 0; r < rounds; r++ {
		if err := sim.RunRound(); err != nil {
			return nil, err
		}
	}
	logrus.Infof("[round %05d] Simulation ended", sim.round)
	return sim.InspectionCounts(), nil
}

// InspectionCounts returns a copy of every worker's inspection counter,
// indexed by worker id.
func (sim *Simulator) InspectionCounts() []int64 {
	counts := make([]int64, len(sim.Workers))
	for i, w := range sim.Workers {
		counts[i] = w.Inspected
	}
	return counts
}

// TotalItems returns the number of items held across all queues.
func (sim *Simulator) TotalItems() int {
	total := 0
	for _, w := range sim.Workers {
		total += w.Queue.Len()
	}
	return total
}
