package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/keepaway-sim/keepaway-sim/internal/testutil"
	"github.com/keepaway-sim/keepaway-sim/sim"
	"github.com/keepaway-sim/keepaway-sim/sim/checkpoint"
	"github.com/keepaway-sim/keepaway-sim/sim/input"
	"github.com/keepaway-sim/keepaway-sim/sim/trace"
)

func TestRunSimulation_Relief_MetricsPrinted(t *testing.T) {
	// GIVEN the example notes on disk
	path := testutil.WriteFile(t, "input.txt", testutil.ExampleNotes)

	// WHEN the 20-round relief run is executed
	var out bytes.Buffer
	m, err := runSimulation(context.Background(), runOptions{
		InputPath: path, Format: input.FormatAuto, Rounds: 20, Relief: 3, Top: 2,
	}, &out)

	// THEN the score and the metrics block are reported
	require.NoError(t, err)
	assert.Equal(t, testutil.ExampleReliefBusiness, m.Business.String())
	assert.Equal(t, testutil.ExampleReliefCounts, m.Counts)
	assert.Contains(t, out.String(), "Simulation Metrics", "metrics header must be on the output")
	assert.Contains(t, out.String(), testutil.ExampleReliefBusiness)
}

func TestRunSimulation_CheckpointResume_MatchesFullRun(t *testing.T) {
	// GIVEN a YAML definition file and a checkpoint after 4000 rounds
	path := testutil.WriteFile(t, "input.yaml", testutil.ExampleYAML)
	ckpt := filepath.Join(t.TempDir(), "run.ckpt")
	var out bytes.Buffer
	_, err := runSimulation(context.Background(), runOptions{
		InputPath: path, Rounds: 4000, Relief: 1, Top: 2, CheckpointOut: ckpt,
	}, &out)
	require.NoError(t, err)

	// WHEN the run resumes for the remaining 6000 rounds
	m, err := runSimulation(context.Background(), runOptions{
		InputPath: path, Rounds: 6000, Relief: 1, Top: 2, CheckpointIn: ckpt,
	}, &out)

	// THEN it reaches the 10000-round answer
	require.NoError(t, err)
	assert.Equal(t, 10000, m.Round)
	assert.Equal(t, testutil.ExampleModularCounts, m.Counts)
	assert.Equal(t, testutil.ExampleModularBusiness, m.Business.String())

	cp, err := checkpoint.LoadFile(ckpt)
	require.NoError(t, err)
	assert.Equal(t, 4000, cp.State.Round)
	assert.Equal(t, testutil.ExampleModulus, cp.State.Modulus)
}

func TestRunSimulation_TraceSummaryPrinted(t *testing.T) {
	path := testutil.WriteFile(t, "input.toml", testutil.ExampleTOML)
	var out bytes.Buffer
	_, err := runSimulation(context.Background(), runOptions{
		InputPath: path, Rounds: 1, Relief: 3, Top: 2, TraceLevel: trace.TraceLevelInspections,
	}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Same-round re-inspections: 4")
}

func TestRunSimulation_BadInput(t *testing.T) {
	path := testutil.WriteFile(t, "input.txt", "Monkey 0:\n Starting items: 1\n")
	_, err := runSimulation(context.Background(), runOptions{InputPath: path, Rounds: 1, Top: 2}, &bytes.Buffer{})
	assert.ErrorIs(t, err, input.ErrSyntax)
}

func TestRunSimulation_CheckpointForOtherDefinitions(t *testing.T) {
	// GIVEN a checkpoint from a two-worker set
	other := "Monkey 0:\n Starting items: 1\n Operation: new = old * 2\n Test: divisible by 3\n If true: throw to monkey 1\n If false: throw to monkey 1\n" +
		"Monkey 1:\n Starting items: 1\n Operation: new = old * 2\n Test: divisible by 5\n If true: throw to monkey 0\n If false: throw to monkey 0\n"
	ckpt := filepath.Join(t.TempDir(), "other.ckpt")
	_, err := runSimulation(context.Background(), runOptions{
		InputPath: testutil.WriteFile(t, "other.txt", other), Rounds: 2, Top: 2, CheckpointOut: ckpt,
	}, &bytes.Buffer{})
	require.NoError(t, err)

	// WHEN resumed against the example
	_, err = runSimulation(context.Background(), runOptions{
		InputPath: testutil.WriteFile(t, "input.txt", testutil.ExampleNotes), Rounds: 2, Top: 2, CheckpointIn: ckpt,
	}, &bytes.Buffer{})

	// THEN it is rejected as a configuration error
	assert.ErrorIs(t, err, sim.ErrConfiguration)
}

func TestRunSimulation_CheckpointForRewiredDefinitions(t *testing.T) {
	// GIVEN a checkpoint of the example
	ckpt := filepath.Join(t.TempDir(), "run.ckpt")
	_, err := runSimulation(context.Background(), runOptions{
		InputPath: testutil.WriteFile(t, "input.txt", testutil.ExampleNotes), Rounds: 100, Top: 2, CheckpointOut: ckpt,
	}, &bytes.Buffer{})
	require.NoError(t, err)

	// AND the same divisors with worker 1 rewired to multiply by 7
	rewired := strings.Replace(testutil.ExampleNotes, "new = old + 6", "new = old * 7", 1)

	// WHEN resumed against the rewired definitions
	_, err = runSimulation(context.Background(), runOptions{
		InputPath: testutil.WriteFile(t, "rewired.txt", rewired), Rounds: 100, Top: 2, CheckpointIn: ckpt,
	}, &bytes.Buffer{})

	// THEN the resume is refused
	assert.ErrorIs(t, err, sim.ErrConfiguration)
}

func TestOpenSpanOutput_FlushesFailedRun(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	// GIVEN span output to a file
	spans := filepath.Join(t.TempDir(), "spans.json")
	flush, err := openSpanOutput(spans)
	require.NoError(t, err)

	// WHEN a run fails and the output is flushed
	path := testutil.WriteFile(t, "input.txt", "Monkey 0:\n Starting items: 1\n")
	_, runErr := runSimulation(context.Background(), runOptions{InputPath: path, Rounds: 1, Top: 2}, &bytes.Buffer{})
	require.Error(t, runErr)
	flush()

	// THEN the failed spans reach the file with their error status
	data, err := os.ReadFile(spans)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Name":"load-input"`)
	assert.Contains(t, string(data), `"Code":"Error"`)
}

func TestApplyPreset_ExplicitFlagsWin(t *testing.T) {
	// GIVEN options where only --rounds was set explicitly
	opts := runOptions{Rounds: 5, Relief: 1, Top: 2}
	changed := func(name string) bool { return name == "rounds" }

	// WHEN the part1 preset is applied
	applyPreset(&opts, &Preset{Rounds: 20, Relief: 3, Top: 3}, changed)

	// THEN rounds keeps the flag value and the rest comes from the preset
	assert.Equal(t, 5, opts.Rounds)
	assert.Equal(t, uint64(3), opts.Relief)
	assert.Equal(t, 3, opts.Top)
}
