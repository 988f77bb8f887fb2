// Package testutil provides shared test infrastructure for the keep-away simulator.
// It holds the canonical four-worker example in every supported source format,
// plus the known results, for use by the sim/... and cmd tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ExampleNotes is the canonical four-worker example in notes format.
const ExampleNotes = `Monkey 0:
  Starting items: 79, 98
  Operation: new = old * 19
  Test: divisible by 23
    If true: throw to monkey 2
    If false: throw to monkey 3

Monkey 1:
  Starting items: 54, 65, 75, 74
  Operation: new = old + 6
  Test: divisible by 19
    If true: throw to monkey 2
    If false: throw to monkey 0

Monkey 2:
  Starting items: 79, 60, 97
  Operation: new = old * old
  Test: divisible by 13
    If true: throw to monkey 1
    If false: throw to monkey 3

Monkey 3:
  Starting items: 74
  Operation: new = old + 3
  Test: divisible by 17
    If true: throw to monkey 0
    If false: throw to monkey 1
`

// ExampleYAML is ExampleNotes as a YAML definition file.
const ExampleYAML = `workers:
  - id: 0
    items: [79, 98]
    operation: old * 19
    divisor: 23
    if_true: 2
    if_false: 3
  - id: 1
    items: [54, 65, 75, 74]
    operation: old + 6
    divisor: 19
    if_true: 2
    if_false: 0
  - id: 2
    items: [79, 60, 97]
    operation: old * old
    divisor: 13
    if_true: 1
    if_false: 3
  - id: 3
    items: [74]
    operation: old + 3
    divisor: 17
    if_true: 0
    if_false: 1
`

// ExampleTOML is ExampleNotes as a TOML definition file.
const ExampleTOML = `[[workers]]
id = 0
items = [79, 98]
operation = "old * 19"
divisor = 23
if_true = 2
if_false = 3

[[workers]]
id = 1
items = [54, 65, 75, 74]
operation = "old + 6"
divisor = 19
if_true = 2
if_false = 0

[[workers]]
id = 2
items = [79, 60, 97]
operation = "old * old"
divisor = 13
if_true = 1
if_false = 3

[[workers]]
id = 3
items = [74]
operation = "old + 3"
divisor = 17
if_true = 0
if_false = 1
`

// Known results for the example.
var (
	ExampleModulus = "96577"

	// 20 rounds, relief 3.
	ExampleReliefCounts   = []int64{101, 95, 7, 105}
	ExampleReliefBusiness = "10605"

	// 10000 rounds, no relief.
	ExampleModularCounts   = []int64{52166, 47830, 1938, 52013}
	ExampleModularBusiness = "2713310158"
)

// WriteFile writes content to name inside a fresh temp dir and returns the path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
