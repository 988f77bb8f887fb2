// Package trace provides decision-trace recording for keep-away simulation runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// RoundRecord captures the outcome of one full round.
type RoundRecord struct {
	Round       int
	Inspections []int64 // inspections performed this round, indexed by worker id
	TotalItems  int     // items held across all queues once the round ended
}

// InspectionRecord captures a single routing decision.
type InspectionRecord struct {
	Round     int
	Worker    int
	Before    string // worry value popped from the worker's queue
	After     string // value appended to the target's queue
	Target    int
	SameRound bool // target > worker, so the item is inspected again this round
}
