// Package config loads the bnbsolve solver configuration from YAML,
// applying defaults and environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/bnbmilp/bnb"
)

// Branching strategy names.
const (
	BranchingClosestToHalf    = "closest-to-half"
	BranchingFirstFractional  = "first-fractional"
	BranchingRandomFractional = "random-fractional"
)

// Frontier discipline names.
const (
	FrontierDepthFirst = "depth-first"
	FrontierBestBound  = "best-bound"
)

// Environment variables read by ApplyEnv.
const (
	EnvLogFile  = "BNB_LOG_FILE"
	EnvLogLevel = "BNB_LOG_LEVEL"
)

// ErrInvalid is matched by every validation error.
var ErrInvalid = errors.New("config: invalid value")

// Config is the solver configuration.
type Config struct {
	Branching string        `yaml:"branching"`
	Frontier  string        `yaml:"frontier"`
	Epsilon   float64       `yaml:"epsilon"`
	Seed      int64         `yaml:"seed"`
	TimeLimit time.Duration `yaml:"time_limit"`
	Log       LogConfig     `yaml:"log"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Default returns closest-to-half branching, depth-first frontier, ε=1e-6,
// no time limit and info-level logging to stderr only.
func Default() Config {
	return Config{
		Branching: BranchingClosestToHalf,
		Frontier:  FrontierDepthFirst,
		Epsilon:   bnb.DefaultEpsilon,
		Log:       LogConfig{Level: "info"},
	}
}

// Load reads path; an empty path yields Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML over Default(). Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ApplyEnv overrides log settings from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, err := c.Strategy(); err != nil {
		return err
	}
	if _, err := c.Discipline(); err != nil {
		return err
	}
	if !(c.Epsilon > 0) {
		return fmt.Errorf("%w: epsilon %v must be > 0", ErrInvalid, c.Epsilon)
	}
	if c.TimeLimit < 0 {
		return fmt.Errorf("%w: time_limit %v must be >= 0", ErrInvalid, c.TimeLimit)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}

	return nil
}

// Strategy returns the configured branching strategy.
func (c Config) Strategy() (bnb.BranchingStrategy, error) {
	switch c.Branching {
	case BranchingClosestToHalf:
		return bnb.ClosestToHalf{}, nil
	case BranchingFirstFractional:
		return bnb.FirstFractional{}, nil
	case BranchingRandomFractional:
		return bnb.NewRandomFractional(c.Seed), nil
	default:
		return nil, fmt.Errorf("%w: branching %q", ErrInvalid, c.Branching)
	}
}

// Discipline returns the configured frontier discipline.
func (c Config) Discipline() (bnb.Discipline, error) {
	switch c.Frontier {
	case FrontierDepthFirst:
		return bnb.DepthFirst, nil
	case FrontierBestBound:
		return bnb.BestBound, nil
	default:
		return nil, fmt.Errorf("%w: frontier %q", ErrInvalid, c.Frontier)
	}
}

// EngineOptions translates c into engine options.
func (c Config) EngineOptions() ([]bnb.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	s, _ := c.Strategy()
	d, _ := c.Discipline()

	return []bnb.Option{
		bnb.WithBranching(s),
		bnb.WithFrontier(d),
		bnb.WithEpsilon(c.Epsilon),
		bnb.WithTimeLimit(c.TimeLimit),
	}, nil
}
