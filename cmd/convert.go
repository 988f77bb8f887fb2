package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/keepaway-sim/keepaway-sim/sim"
	"github.com/keepaway-sim/keepaway-sim/sim/input"
)

// --- keepaway-sim convert ---

var (
	convertPath   string
	convertFormat string
	convertTo     string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert worker definitions between notes, YAML and TOML",
	Long:  "Convert worker definitions between the notes format and structured YAML/TOML files. Output is written to stdout for piping.",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		defs, err := input.Load(convertPath, input.Format(convertFormat))
		if err != nil {
			logrus.Fatalf("Conversion failed: %v", err)
		}
		if err := writeDefinitions(os.Stdout, defs, input.Format(convertTo)); err != nil {
			logrus.Fatalf("Conversion failed: %v", err)
		}
	},
}

// writeDefinitions encodes defs in the given output format.
func writeDefinitions(w io.Writer, defs []sim.WorkerDefinition, format input.Format) error {
	switch format {
	case input.FormatYAML:
		return input.WriteYAML(w, defs)
	case input.FormatTOML:
		return input.WriteTOML(w, defs)
	case input.FormatNotes:
		return input.WriteNotes(w, defs)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// --- keepaway-sim describe ---

var (
	describePath   string
	describeFormat string
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the workers and the shared modulus of a definitions file",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		defs, err := input.Load(describePath, input.Format(describeFormat))
		if err != nil {
			logrus.Fatalf("Failed to load definitions: %v", err)
		}
		describeDefinitions(os.Stdout, defs)
	},
}

func describeDefinitions(w io.Writer, defs []sim.WorkerDefinition) {
	fmt.Fprintln(w, "=== Workers ===")
	for _, def := range defs {
		fmt.Fprintf(w, "Worker %-3d items=%-3d %-12s divisor=%-4d pass->%d fail->%d\n",
			def.ID, len(def.InitialItems), def.Transform, def.Divisor, def.PassTarget, def.FailTarget)
	}
	fmt.Fprintf(w, "Modulus (LCM of divisors): %s\n", sim.ComputeModulus(defs))
}

// --- keepaway-sim generate ---

var (
	generateWorkers int
	generateSeed    int64
	generateTo      string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random, valid worker definition set",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		defs, err := sim.GenerateDefinitions(sim.GeneratorKey(generateSeed), generateWorkers)
		if err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
		logrus.Debugf("Generated %d workers from seed %d (modulus=%s)", len(defs), generateSeed, sim.ComputeModulus(defs))
		if err := writeDefinitions(os.Stdout, defs, input.Format(generateTo)); err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertPath, "input", "", "Worker definitions file")
	convertCmd.Flags().StringVar(&convertFormat, "format", string(input.FormatAuto), "Input format (auto, notes, yaml, toml)")
	convertCmd.Flags().StringVar(&convertTo, "to", string(input.FormatYAML), "Output format (notes, yaml, toml)")
	_ = convertCmd.MarkFlagRequired("input")

	describeCmd.Flags().StringVar(&describePath, "input", "", "Worker definitions file")
	describeCmd.Flags().StringVar(&describeFormat, "format", string(input.FormatAuto), "Input format (auto, notes, yaml, toml)")
	_ = describeCmd.MarkFlagRequired("input")

	generateCmd.Flags().IntVar(&generateWorkers, "workers", 8, "Number of workers to generate")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 42, "Seed for deterministic generation")
	generateCmd.Flags().StringVar(&generateTo, "to", string(input.FormatNotes), "Output format (notes, yaml, toml)")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(describeCmd)
}
