// Reports the final inspection counts and the product of the busiest workers.

package sim

import (
	"fmt"
	"io"
	"math/big"
	"slices"
)

// Metrics aggregates the inspection counters of a finished run
// for final reporting.
type Metrics struct {
	Round    int      // completed rounds
	Counts   []int64  // inspections per worker id
	Top      int      // number of busiest workers multiplied together
	Business *big.Int // product of the Top largest counts
}

// NewMetrics collects the current counters of sim.
func NewMetrics(sim *Simulator, top int) *Metrics {
	counts := sim.InspectionCounts()
	return &Metrics{
		Round:    sim.Round(),
		Counts:   counts,
		Top:      top,
		Business: MonkeyBusiness(counts, top),
	}
}

// MonkeyBusiness multiplies the top largest counts. top is clamped to the
// number of counts; a non-positive top yields 0.
func MonkeyBusiness(counts []int64, top int) *big.Int {
	if top <= 0 || len(counts) == 0 {
		return new(big.Int)
	}
	sorted := slices.Clone(counts)
	slices.SortFunc(sorted, func(a, b int64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})
	product := big.NewInt(1)
	for _, n := range sorted[:min(top, len(sorted))] {
		product.Mul(product, big.NewInt(n))
	}
	return product
}

// Print writes the counters and the final score.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Rounds               : %d\n", m.Round)
	for id, n := range m.Counts {
		fmt.Fprintf(w, "Worker %-3d inspected : %d items\n", id, n)
	}
	fmt.Fprintf(w, "Monkey business (top %d): %s\n", m.Top, m.Business)
}
