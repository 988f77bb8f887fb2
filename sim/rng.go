package sim

import (
	"math/rand"

	farm "github.com/dgryski/go-farm"
)

// GeneratorKey uniquely identifies a reproducible generated worker set.
// The same key and worker count MUST produce identical definitions.
type GeneratorKey int64

// RNG subsystems used by GenerateDefinitions. Each draws from its own stream
// so adding draws to one never shifts the values of another.
const (
	SubsystemItems      = "items"
	SubsystemTransforms = "transforms"
	SubsystemRouting    = "routing"
)

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
// Every subsystem is seeded with key XOR farm.Hash64(name).
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        GeneratorKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a GeneratorKey.
func NewPartitionedRNG(key GeneratorKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	seed := int64(p.key) ^ int64(farm.Hash64([]byte(name)))
	rng := rand.New(rand.NewSource(seed))
	p.subsystems[name] = rng
	return rng
}
