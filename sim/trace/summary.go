package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalRounds            int
	TotalInspections       int64
	SameRoundReinspections int
	BusiestWorker          int         // -1 when no inspections were recorded
	TargetDistribution     map[int]int // worker id → count of items routed to it
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		BusiestWorker:      -1,
		TargetDistribution: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalRounds = len(st.Rounds)
	var perWorker []int64
	for _, r := range st.Rounds {
		for id, n := range r.Inspections {
			if id >= len(perWorker) {
				perWorker = append(perWorker, make([]int64, id+1-len(perWorker))...)
			}
			perWorker[id] += n
			summary.TotalInspections += n
		}
	}
	var best int64
	for id, n := range perWorker {
		if n > best {
			best = n
			summary.BusiestWorker = id
		}
	}

	for _, rec := range st.Inspections {
		summary.TargetDistribution[rec.Target]++
		if rec.SameRound {
			summary.SameRoundReinspections++
		}
	}
	return summary
}
