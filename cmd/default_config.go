package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset describes a named run configuration in defaults.yaml.
type Preset struct {
	Rounds int    `yaml:"rounds"`
	Relief uint64 `yaml:"relief"`
	Top    int    `yaml:"top"`
}

// Config represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Version string            `yaml:"version"`
	Presets map[string]Preset `yaml:"presets"`
}

// loadDefaultsConfig parses defaults.yaml into a Config struct.
// Uses strict field checking: typos must cause errors.
func loadDefaultsConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading defaults file: %w", err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing defaults YAML: %w", err)
	}
	return &cfg, nil
}

// GetPreset returns the named preset from the defaults file.
func GetPreset(name, defaultsPath string) (*Preset, error) {
	cfg, err := loadDefaultsConfig(defaultsPath)
	if err != nil {
		return nil, err
	}
	p, ok := cfg.Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q in %s", name, defaultsPath)
	}
	return &p, nil
}
