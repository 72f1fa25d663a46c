package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/studentperf-go/internal/config"
)

func TestNewJSONToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, closer, err := New(config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"}, &stdout, &stderr)
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug("hidden")
	logger.Info("dataset loaded", slog.Int("students", 3))

	assert.Empty(t, stderr.String())
	var entry map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &entry))
	assert.Equal(t, "dataset loaded", entry["msg"])
	assert.Equal(t, float64(3), entry["students"])
}

func TestNewTextToStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, _, err := New(config.LoggingConfig{Level: "debug", Format: "text", Output: "stderr"}, &stdout, &stderr)
	require.NoError(t, err)

	logger.Debug("visible")
	assert.Contains(t, stderr.String(), "msg=visible")
	assert.Empty(t, stdout.String())
}

func TestNewBoth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	var stdout, stderr bytes.Buffer
	logger, closer, err := New(config.LoggingConfig{Level: "info", Format: "text", Output: "both", FilePath: path}, &stdout, &stderr)
	require.NoError(t, err)

	logger.Warn("cache unavailable")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cache unavailable")
	assert.Contains(t, stderr.String(), "cache unavailable")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}
