package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_WritesJSONToBothSinks(t *testing.T) {
	var stdout bytes.Buffer
	path := filepath.Join(t.TempDir(), "app.log")
	level := new(slog.LevelVar)

	logger, closer := New(&stdout, level, FileOptions{Path: path, MaxSizeMB: 1, MaxBackups: 3})
	logger.Info("hello", slog.String("k", "v"))
	require.NoError(t, closer.Close())

	var rec map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "v", rec["k"])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, stdout.String(), string(data))
}

func TestNewLogger_LevelChangesAtRuntime(t *testing.T) {
	var stdout bytes.Buffer
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)

	logger, closer := New(&stdout, level, FileOptions{})
	defer closer.Close()

	logger.Info("hidden")
	assert.Zero(t, stdout.Len())

	level.Set(slog.LevelDebug)
	logger.Debug("shown")
	assert.True(t, strings.Contains(stdout.String(), "shown"))
}
