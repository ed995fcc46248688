package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_ConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	log, closer, err := New(Options{Console: &buf, Level: slog.LevelInfo})
	require.NoError(t, err)
	defer closer.Close()

	log.Debug("hidden", slog.Int("node", 1))
	log.Info("search finished", slog.Int("nodes", 3))
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "search finished")
	assert.Contains(t, buf.String(), "nodes=3")
}

func TestNew_FileSinkRecordsDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bnb.log")
	var console bytes.Buffer
	log, closer, err := New(Options{
		Console: &console,
		Level:   slog.LevelWarn,
		File:    path,
		Getenv:  func(string) string { return "" },
	})
	require.NoError(t, err)

	log.With(slog.String("cmd", "knapsack")).Debug("node", slog.Int("node", 7))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "node=7")
	assert.Contains(t, string(data), "cmd=knapsack")
	assert.Empty(t, console.String())
}

func TestRotating_EnvOverrides(t *testing.T) {
	env := map[string]string{EnvMaxSize: "5", EnvMaxBackups: "0", EnvMaxAge: "bogus"}
	l := rotating("x.log", func(k string) string { return env[k] })
	assert.Equal(t, "x.log", l.Filename)
	assert.Equal(t, 5, l.MaxSize)
	assert.Equal(t, 0, l.MaxBackups)
	assert.Equal(t, 28, l.MaxAge)
}
