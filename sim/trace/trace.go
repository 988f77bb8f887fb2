package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelRounds captures one record per completed round.
	TraceLevelRounds TraceLevel = "rounds"
	// TraceLevelInspections captures round records plus every routing decision.
	TraceLevelInspections TraceLevel = "inspections"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:        true,
	TraceLevelRounds:      true,
	TraceLevelInspections: true,
	"":                    true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether any records are collected.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelRounds || c.Level == TraceLevelInspections
}

// SimulationTrace collects records during a simulation run.
type SimulationTrace struct {
	Config      TraceConfig
	Rounds      []RoundRecord
	Inspections []InspectionRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:      config,
		Rounds:      make([]RoundRecord, 0),
		Inspections: make([]InspectionRecord, 0),
	}
}

// RecordRound appends a round record.
func (st *SimulationTrace) RecordRound(record RoundRecord) {
	st.Rounds = append(st.Rounds, record)
}

// RecordInspection appends an inspection record. It is a no-op unless the
// level is TraceLevelInspections.
func (st *SimulationTrace) RecordInspection(record InspectionRecord) {
	if st.Config.Level != TraceLevelInspections {
		return
	}
	st.Inspections = append(st.Inspections, record)
}
