// Package sim provides the keep-away round simulation engine.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - transform.go: the closed set of worry transforms and their evaluation
//   - definition.go: immutable worker definitions and their validation
//   - modulus.go: the shared modulus that bounds worry values
//   - simulator.go: the round loop, draining workers in ascending id order
//   - state.go: snapshots of queues and counters between rounds
//   - generate.go: seeded random worker sets (see rng.go for the streams)
//
// # Architecture
//
// Workers never hold references to each other: routing targets are ids into
// the Simulator's dense worker slice. Sub-packages provide the surfaces around
// the kernel:
//   - sim/input/: loaders for puzzle notes, YAML and TOML definition files
//   - sim/checkpoint/: msgpack snapshots of a simulator between rounds
//   - sim/trace/: per-round and per-inspection decision records
//   - sim/tracing/: OpenTelemetry spans for CLI runs
//
// # Worry values
//
// Worry values are math/big integers. With relief 1 every transformed value is
// reduced modulo the LCM of all divisors, which keeps values below the
// modulus without changing any divisibility test. With relief > 1 values are
// divided after each transform; floor division does not commute with the
// modulus, so those runs keep exact values.
package sim
