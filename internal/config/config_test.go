package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bnbmilp/bnb"
	"github.com/katalvlaran/bnbmilp/internal/config"
)

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bnb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
branching: random-fractional
frontier: best-bound
epsilon: 0.0001
seed: 42
time_limit: 1m30s
log:
  file: /tmp/bnb.log
  level: debug
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Config{
		Branching: config.BranchingRandomFractional,
		Frontier:  config.FrontierBestBound,
		Epsilon:   1e-4,
		Seed:      42,
		TimeLimit: 90 * time.Second,
		Log:       config.LogConfig{File: "/tmp/bnb.log", Level: "debug"},
	}, cfg)

	opts, err := cfg.EngineOptions()
	require.NoError(t, err)
	o := bnb.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	assert.IsType(t, &bnb.RandomFractional{}, o.Branching)
	assert.Equal(t, 1e-4, o.Epsilon)
	assert.Equal(t, 90*time.Second, o.TimeLimit)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte("frontier: best-bound\n"))
	require.NoError(t, err)
	assert.Equal(t, config.FrontierBestBound, cfg.Frontier)
	assert.Equal(t, config.BranchingClosestToHalf, cfg.Branching)
	assert.Equal(t, bnb.DefaultEpsilon, cfg.Epsilon)

	cfg, err = config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"branching":  "branching: widest\n",
		"frontier":   "frontier: breadth-first\n",
		"epsilon":    "epsilon: 0\n",
		"time limit": "time_limit: -1s\n",
		"log level":  "log:\n  level: loud\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(doc))
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}

	_, err := config.Parse([]byte("unknown_key: 1\n"))
	assert.Error(t, err)
	_, err = config.Parse([]byte("epsilon: [1, 2]\n"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := config.Default()
	env := map[string]string{config.EnvLogFile: "/var/log/bnb.log", config.EnvLogLevel: "warn"}
	cfg.ApplyEnv(func(k string) string { return env[k] })
	assert.Equal(t, "/var/log/bnb.log", cfg.Log.File)
	assert.Equal(t, "warn", cfg.Log.Level)

	cfg = config.Default()
	cfg.ApplyEnv(func(string) string { return "" })
	assert.Equal(t, config.Default(), cfg)
}
