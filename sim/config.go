package sim

import "github.com/keepaway-sim/keepaway-sim/sim/trace"

// SimConfig groups run-wide simulation parameters.
type SimConfig struct {
	// Relief divides every transformed worry value (floor) before the
	// divisibility test. 0 or 1 disables relief and enables modulus
	// reduction; values > 1 keep exact values with no reduction.
	Relief uint64
	Trace  trace.TraceConfig // decision tracing (default none)
}

func (c SimConfig) relief() uint64 {
	if c.Relief == 0 {
		return 1
	}
	return c.Relief
}
