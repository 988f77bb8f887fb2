package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/keepaway-sim/keepaway-sim/sim"
	"github.com/keepaway-sim/keepaway-sim/sim/checkpoint"
	"github.com/keepaway-sim/keepaway-sim/sim/input"
	"github.com/keepaway-sim/keepaway-sim/sim/trace"
	"github.com/keepaway-sim/keepaway-sim/sim/tracing"
)

// version is reported in OpenTelemetry resources.
var version = "dev"

var (
	// CLI flags for the run command
	inputPath        string // Worker definitions file
	inputFormat      string // auto, notes, yaml or toml
	rounds           int    // Number of rounds to run
	relief           uint64 // Divide worry by this after every transform (1 = modular mode)
	top              int    // Number of busiest workers multiplied into the score
	presetName       string // Named preset from defaults.yaml
	defaultsFilePath string // Path to defaults.yaml
	logLevel         string // Log verbosity level
	traceLevel       string // Decision trace level
	checkpointIn     string // Resume from this checkpoint
	checkpointOut    string // Write a checkpoint here after the run
	otelOut          string // Write OpenTelemetry spans here
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "keepaway-sim",
	Short: "Round simulator for the keep-away item dispatch puzzle",
}

// runOptions is the resolved configuration of one run.
type runOptions struct {
	InputPath     string
	Format        input.Format
	Rounds        int
	Relief        uint64
	Top           int
	TraceLevel    trace.TraceLevel
	CheckpointIn  string
	CheckpointOut string
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the keep-away simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		opts := runOptions{
			InputPath:     inputPath,
			Format:        input.Format(inputFormat),
			Rounds:        rounds,
			Relief:        relief,
			Top:           top,
			TraceLevel:    trace.TraceLevel(traceLevel),
			CheckpointIn:  checkpointIn,
			CheckpointOut: checkpointOut,
		}
		if presetName != "" {
			preset, err := GetPreset(presetName, defaultsFilePath)
			if err != nil {
				logrus.Fatalf("Failed to load preset: %v", err)
			}
			applyPreset(&opts, preset, cmd.Flags().Changed)
		}
		if !input.ValidFormats[opts.Format] {
			logrus.Fatalf("Unknown input format %q", inputFormat)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q", traceLevel)
		}

		flushSpans := func() {}
		if otelOut != "" {
			flush, err := openSpanOutput(otelOut)
			if err != nil {
				logrus.Fatalf("Failed to initialise tracing: %v", err)
			}
			flushSpans = flush
		}

		_, err := runSimulation(cmd.Context(), opts, os.Stdout)
		flushSpans()
		if err != nil {
			logrus.Errorf("Simulation failed: %v", err)
			os.Exit(1)
		}
		logrus.Info("Simulation complete.")
	},
}

// openSpanOutput installs a tracer provider writing spans to path. The
// returned func flushes the provider and closes the file; call it before
// exiting, including on failure.
func openSpanOutput(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	shutdown, err := tracing.Init("keepaway-sim", version, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return func() {
		if err := shutdown(context.Background()); err != nil {
			logrus.Warnf("Failed to flush spans: %v", err)
		}
		if err := f.Close(); err != nil {
			logrus.Warnf("Failed to close span output: %v", err)
		}
	}, nil
}

// applyPreset copies preset values into opts for every flag the user did not set.
func applyPreset(opts *runOptions, p *Preset, changed func(string) bool) {
	if !changed("rounds") && p.Rounds > 0 {
		opts.Rounds = p.Rounds
	}
	if !changed("relief") && p.Relief > 0 {
		opts.Relief = p.Relief
	}
	if !changed("top") && p.Top > 0 {
		opts.Top = p.Top
	}
}

// runSimulation loads the definitions, runs (or resumes) the simulation and
// prints the metrics to out.
func runSimulation(ctx context.Context, opts runOptions, out io.Writer) (m *sim.Metrics, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := tracing.StartSpan(ctx, "run",
		attribute.String("input", opts.InputPath),
		attribute.Int("rounds", opts.Rounds),
		attribute.Int64("relief", int64(opts.Relief)),
	)
	defer func() { tracing.EndSpan(span, err) }()

	_, loadSpan := tracing.StartSpan(ctx, "load-input")
	defs, err := input.Load(opts.InputPath, opts.Format)
	tracing.EndSpan(loadSpan, err)
	if err != nil {
		return nil, err
	}

	cfg := sim.SimConfig{Relief: opts.Relief, Trace: trace.TraceConfig{Level: opts.TraceLevel}}
	var (
		s     *sim.Simulator
		runID string
	)
	if opts.CheckpointIn != "" {
		cp, err := checkpoint.LoadFile(opts.CheckpointIn)
		if err != nil {
			return nil, fmt.Errorf("loading checkpoint: %w", err)
		}
		if s, err = cp.Resume(defs, cfg); err != nil {
			return nil, fmt.Errorf("resuming checkpoint: %w", err)
		}
		if s.Relief != max(opts.Relief, 1) {
			logrus.Warnf("Checkpoint relief %d overrides requested relief %d", s.Relief, opts.Relief)
		}
		runID = cp.RunID
	} else {
		if s, err = sim.NewSimulator(defs, cfg); err != nil {
			return nil, err
		}
		runID = uuid.New().String()
	}
	log := logrus.WithField("run_id", runID)
	log.Infof("Running %d rounds from round %d over %d workers (modulus=%s, relief=%d)",
		opts.Rounds, s.Round(), len(s.Workers), s.Modulus, s.Relief)

	_, simSpan := tracing.StartSpan(ctx, "simulate", attribute.Int("start_round", s.Round()))
	_, err = s.Run(opts.Rounds)
	tracing.EndSpan(simSpan, err)
	if err != nil {
		return nil, err
	}

	if opts.CheckpointOut != "" {
		cp, err := checkpoint.New(s, runID)
		if err != nil {
			return nil, fmt.Errorf("saving checkpoint: %w", err)
		}
		if err := checkpoint.SaveFile(opts.CheckpointOut, cp); err != nil {
			return nil, fmt.Errorf("saving checkpoint: %w", err)
		}
		log.Infof("Checkpoint written to %s at round %d", opts.CheckpointOut, s.Round())
	}

	m = sim.NewMetrics(s, opts.Top)
	m.Print(out)
	if s.Trace != nil {
		summary := trace.Summarize(s.Trace)
		fmt.Fprintf(out, "Traced rounds        : %d\n", summary.TotalRounds)
		fmt.Fprintf(out, "Busiest worker       : %d\n", summary.BusiestWorker)
		if opts.TraceLevel == trace.TraceLevelInspections {
			fmt.Fprintf(out, "Same-round re-inspections: %d\n", summary.SameRoundReinspections)
		}
	}
	span.SetAttributes(attribute.String("monkey_business", m.Business.String()))
	return m, nil
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVar(&inputPath, "input", "input.txt", "Worker definitions file")
	runCmd.Flags().StringVar(&inputFormat, "format", string(input.FormatAuto), "Input format (auto, notes, yaml, toml)")
	runCmd.Flags().IntVar(&rounds, "rounds", 10000, "Number of rounds to run")
	runCmd.Flags().Uint64Var(&relief, "relief", 1, "Divide worry values by this after every transform (1 = reduce modulo the divisors' LCM)")
	runCmd.Flags().IntVar(&top, "top", 2, "Number of busiest workers multiplied into the score")
	runCmd.Flags().StringVar(&presetName, "preset", "", "Named preset from the defaults file (e.g., part1, part2)")
	runCmd.Flags().StringVar(&defaultsFilePath, "defaults-filepath", "defaults.yaml", "Path to defaults.yaml")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), "Decision trace level (none, rounds, inspections)")
	runCmd.Flags().StringVar(&checkpointIn, "checkpoint-in", "", "Resume from this checkpoint file")
	runCmd.Flags().StringVar(&checkpointOut, "checkpoint-out", "", "Write a checkpoint file after the run")
	runCmd.Flags().StringVar(&otelOut, "otel-out", "", "Write OpenTelemetry spans as JSON to this file")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
