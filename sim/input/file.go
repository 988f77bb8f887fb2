package input

import (
	"bytes"
	"fmt"
	"io"
	"math/big"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/keepaway-sim/keepaway-sim/sim"
)

// DefinitionFile is the structured (YAML or TOML) form of a worker set.
type DefinitionFile struct {
	Workers []WorkerSpec `yaml:"workers" toml:"workers"`
}

// WorkerSpec describes one worker in a DefinitionFile.
type WorkerSpec struct {
	ID        int      `yaml:"id" toml:"id"`
	Items     []uint64 `yaml:"items" toml:"items"`
	Operation string   `yaml:"operation" toml:"operation"` // "old * 19", "old + old", ...
	Divisor   uint64   `yaml:"divisor" toml:"divisor"`
	IfTrue    int      `yaml:"if_true" toml:"if_true"`
	IfFalse   int      `yaml:"if_false" toml:"if_false"`
}

// Definitions converts the file into worker definitions.
func (f *DefinitionFile) Definitions() ([]sim.WorkerDefinition, error) {
	defs := make([]sim.WorkerDefinition, len(f.Workers))
	for i, w := range f.Workers {
		transform, err := sim.ParseTransform(w.Operation)
		if err != nil {
			return nil, fmt.Errorf("worker %d: %w", w.ID, err)
		}
		items := make([]*big.Int, len(w.Items))
		for j, v := range w.Items {
			items[j] = new(big.Int).SetUint64(v)
		}
		defs[i] = sim.WorkerDefinition{
			ID:           w.ID,
			InitialItems: items,
			Transform:    transform,
			Divisor:      w.Divisor,
			PassTarget:   w.IfTrue,
			FailTarget:   w.IfFalse,
		}
	}
	return defs, nil
}

// NewDefinitionFile builds the structured form of defs. Items must fit in a uint64.
func NewDefinitionFile(defs []sim.WorkerDefinition) (*DefinitionFile, error) {
	f := &DefinitionFile{Workers: make([]WorkerSpec, len(defs))}
	for i, def := range defs {
		items := make([]uint64, len(def.InitialItems))
		for j, v := range def.InitialItems {
			if !v.IsUint64() {
				return nil, fmt.Errorf("worker %d item %s does not fit in a uint64", def.ID, v)
			}
			items[j] = v.Uint64()
		}
		f.Workers[i] = WorkerSpec{
			ID:        def.ID,
			Items:     items,
			Operation: def.Transform.String(),
			Divisor:   def.Divisor,
			IfTrue:    def.PassTarget,
			IfFalse:   def.FailTarget,
		}
	}
	return f, nil
}

// ParseYAML decodes a YAML definition file. Unknown fields are errors.
func ParseYAML(data []byte) ([]sim.WorkerDefinition, error) {
	var f DefinitionFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: parsing YAML: %w", ErrSyntax, err)
	}
	return f.Definitions()
}

// ParseTOML decodes a TOML definition file. Unknown keys are errors.
func ParseTOML(data []byte) ([]sim.WorkerDefinition, error) {
	var f DefinitionFile
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing TOML: %w", ErrSyntax, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown TOML keys %v", ErrSyntax, undecoded)
	}
	return f.Definitions()
}

// WriteYAML encodes defs as a YAML definition file.
func WriteYAML(w io.Writer, defs []sim.WorkerDefinition) error {
	f, err := NewDefinitionFile(defs)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("YAML marshal failed: %w", err)
	}
	return enc.Close()
}

// WriteTOML encodes defs as a TOML definition file.
func WriteTOML(w io.Writer, defs []sim.WorkerDefinition) error {
	f, err := NewDefinitionFile(defs)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("TOML marshal failed: %w", err)
	}
	return nil
}
