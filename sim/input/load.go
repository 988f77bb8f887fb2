// Package input loads worker definitions from the keep-away notes format or
// from structured YAML/TOML files.
package input

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/keepaway-sim/keepaway-sim/sim"
)

// Format names a definition source format.
type Format string

const (
	FormatAuto  Format = "auto"
	FormatNotes Format = "notes"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
)

// ValidFormats is the set of recognized format names.
var ValidFormats = map[Format]bool{"": true, FormatAuto: true, FormatNotes: true, FormatYAML: true, FormatTOML: true}

// DetectFormat picks a format from the file extension. Anything that is not
// YAML or TOML is treated as notes.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatNotes
	}
}

// Parse decodes data in the given format and validates the result.
// FormatAuto and the empty format mean notes.
func Parse(data []byte, format Format) ([]sim.WorkerDefinition, error) {
	var (
		defs []sim.WorkerDefinition
		err  error
	)
	switch format {
	case FormatYAML:
		defs, err = ParseYAML(data)
	case FormatTOML:
		defs, err = ParseTOML(data)
	case FormatNotes, FormatAuto, "":
		defs, err = ParseNotes(data)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if err := sim.ValidateDefinitions(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// Load reads and parses a definition file. FormatAuto detects the format from
// the file extension.
func Load(path string, format Format) ([]sim.WorkerDefinition, error) {
	if !ValidFormats[format] {
		return nil, fmt.Errorf("unknown input format %q", format)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definitions: %w", err)
	}
	if format == FormatAuto || format == "" {
		format = DetectFormat(path)
	}
	defs, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logrus.Debugf("Loaded %d workers from %s (%s)", len(defs), path, format)
	return defs, nil
}
