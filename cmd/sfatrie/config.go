package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario names.
const (
	ScenarioWhole       = "whole"
	ScenarioSubsequence = "subsequence"
	ScenarioRange       = "range"
)

// Config holds the parameters of a benchmark run.
type Config struct {
	Scenario      string  `yaml:"scenario"`
	Seed          int64   `yaml:"seed"`
	Series        int     `yaml:"series"`
	Length        int     `yaml:"length"`
	RawLength     int     `yaml:"raw_length"`
	Window        int     `yaml:"window"`
	WordLength    int     `yaml:"word_length"`
	AlphabetSize  int     `yaml:"alphabet_size"`
	LeafThreshold int     `yaml:"leaf_threshold"`
	Transform     string  `yaml:"transform"`
	Queries       int     `yaml:"queries"`
	K             int     `yaml:"k"`
	Tolerance     float64 `yaml:"tolerance"`
	EpsilonFactor float64 `yaml:"epsilon_factor"`
}

// DefaultConfig returns the whole-matching workload.
func DefaultConfig() Config {
	return Config{
		Scenario:      ScenarioWhole,
		Seed:          1,
		Series:        10000,
		Length:        256,
		RawLength:     100000,
		Window:        256,
		WordLength:    8,
		AlphabetSize:  4,
		LeafThreshold: 10,
		Transform:     "sfa",
		Queries:       20,
		K:             1,
		Tolerance:     0.003,
		EpsilonFactor: 1.001,
	}
}

// LoadConfig overlays the YAML file at path onto base. Keys missing from the
// file keep their value from base.
func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the parameters that the index itself does not.
func (c Config) Validate() error {
	switch c.Scenario {
	case ScenarioWhole, ScenarioRange:
		if c.Series <= 0 {
			return fmt.Errorf("series must be positive, got %d", c.Series)
		}
	case ScenarioSubsequence:
		if c.Window <= 0 || c.Window >= c.RawLength {
			return fmt.Errorf("window must be in (0, %d), got %d", c.RawLength, c.Window)
		}
	default:
		return fmt.Errorf("unknown scenario %q", c.Scenario)
	}

	switch strings.ToLower(c.Transform) {
	case "sfa", "sax":
	default:
		return fmt.Errorf("unknown transform %q", c.Transform)
	}

	if c.Length <= 0 {
		return fmt.Errorf("length must be positive, got %d", c.Length)
	}
	if c.Queries <= 0 {
		return fmt.Errorf("queries must be positive, got %d", c.Queries)
	}
	if c.K <= 0 {
		return fmt.Errorf("k must be positive, got %d", c.K)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative, got %g", c.Tolerance)
	}
	if c.EpsilonFactor < 1 {
		return fmt.Errorf("epsilon factor must be at least 1, got %g", c.EpsilonFactor)
	}
	return nil
}

// String renders the configuration as YAML.
func (c Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		type plain Config
		return fmt.Sprintf("%+v", plain(c))
	}
	return string(out)
}
