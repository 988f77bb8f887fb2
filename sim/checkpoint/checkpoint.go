// Package checkpoint persists a simulator between rounds so a long run can be
// resumed. Checkpoints are msgpack-encoded and carry a farm fingerprint of
// their payload plus one of the worker definitions they were taken from.
package checkpoint

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dgryski/go-farm"
	"github.com/google/uuid"
	"github.com/shamaton/msgpack/v2"

	"github.com/keepaway-sim/keepaway-sim/sim"
)

// ErrFingerprintMismatch is returned when a checkpoint payload does not match
// its recorded fingerprint.
var ErrFingerprintMismatch = errors.New("checkpoint fingerprint mismatch")

// Checkpoint is one saved simulator state.
type Checkpoint struct {
	RunID       string    `msgpack:"run_id"`
	CreatedAt   int64     `msgpack:"created_at"` // unix seconds
	Definitions uint64    `msgpack:"definitions"` // Fingerprint of the worker definitions
	State       sim.State `msgpack:"state"`
}

// definitionImage is the hashed form of one WorkerDefinition.
type definitionImage struct {
	ID        int      `msgpack:"id"`
	Items     []string `msgpack:"items"`
	Transform string   `msgpack:"transform"`
	Divisor   uint64   `msgpack:"divisor"`
	Pass      int      `msgpack:"pass"`
	Fail      int      `msgpack:"fail"`
}

// envelope is the on-disk frame around the encoded Checkpoint.
type envelope struct {
	Payload     []byte `msgpack:"payload"`
	Fingerprint uint64 `msgpack:"fingerprint"`
}

// New captures the current state of s under runID. An empty runID gets a
// fresh one.
func New(s *sim.Simulator, runID string) (*Checkpoint, error) {
	if runID == "" {
		runID = uuid.New().String()
	}
	defs := make([]sim.WorkerDefinition, len(s.Workers))
	for i, w := range s.Workers {
		defs[i] = w.Definition
	}
	fp, err := Fingerprint(defs)
	if err != nil {
		return nil, err
	}
	return &Checkpoint{
		RunID:       runID,
		CreatedAt:   time.Now().Unix(),
		Definitions: fp,
		State:       s.Snapshot(),
	}, nil
}

// Fingerprint hashes the msgpack encoding of a definition set: ids, initial
// items, transforms, divisors and routing targets all contribute.
func Fingerprint(defs []sim.WorkerDefinition) (uint64, error) {
	images := make([]definitionImage, len(defs))
	for i, def := range defs {
		items := make([]string, len(def.InitialItems))
		for j, v := range def.InitialItems {
			items[j] = v.String()
		}
		images[i] = definitionImage{
			ID:        def.ID,
			Items:     items,
			Transform: def.Transform.String(),
			Divisor:   def.Divisor,
			Pass:      def.PassTarget,
			Fail:      def.FailTarget,
		}
	}
	data, err := msgpack.Marshal(images)
	if err != nil {
		return 0, fmt.Errorf("encoding definitions: %w", err)
	}
	return farm.Hash64(data), nil
}

// Save writes cp to w.
func Save(w io.Writer, cp *Checkpoint) error {
	payload, err := msgpack.Marshal(cp)
	if err != nil {
		return fmt.Errorf("encoding checkpoint: %w", err)
	}
	env := envelope{Payload: payload, Fingerprint: farm.Hash64(payload)}
	if err := msgpack.MarshalWrite(w, env); err != nil {
		return fmt.Errorf("writing checkpoint: %w", err)
	}
	return nil
}

// Load reads a checkpoint written by Save and verifies its fingerprint.
func Load(r io.Reader) (*Checkpoint, error) {
	var env envelope
	if err := msgpack.UnmarshalRead(r, &env); err != nil {
		return nil, fmt.Errorf("reading checkpoint: %w", err)
	}
	if got := farm.Hash64(env.Payload); got != env.Fingerprint {
		return nil, fmt.Errorf("%w: recorded %016x, computed %016x", ErrFingerprintMismatch, env.Fingerprint, got)
	}
	var cp Checkpoint
	if err := msgpack.Unmarshal(env.Payload, &cp); err != nil {
		return nil, fmt.Errorf("decoding checkpoint: %w", err)
	}
	return &cp, nil
}

// SaveFile writes cp to path, replacing any existing file.
func SaveFile(path string, cp *Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(f, cp); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads a checkpoint from path.
func LoadFile(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Resume rebuilds a simulator from the definitions and the checkpoint.
// Definitions that differ from the ones the checkpoint was taken from are
// rejected with sim.ErrConfiguration.
func (cp *Checkpoint) Resume(defs []sim.WorkerDefinition, cfg sim.SimConfig) (*sim.Simulator, error) {
	fp, err := Fingerprint(defs)
	if err != nil {
		return nil, err
	}
	if fp != cp.Definitions {
		return nil, fmt.Errorf("%w: definitions fingerprint %016x does not match checkpoint (%016x)", sim.ErrConfiguration, fp, cp.Definitions)
	}
	return sim.Restore(defs, cp.State, cfg)
}
