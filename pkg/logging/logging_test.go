package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"warning alias", "WARNING", slog.LevelWarn},
		{"error", "Error", slog.LevelError},
		{"empty defaults to info", "", slog.LevelInfo},
		{"garbage defaults to info", "loud", slog.LevelInfo},
		{"whitespace tolerated", "  debug  ", slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestNewStructuredLogger(t *testing.T) {
	logger := NewStructuredLogger("test", "v0.0.0", "debug")
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))

	logger = NewStructuredLogger("test", "v0.0.0", "error")
	assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
}

func TestAddFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nvup.log")

	closeFn, err := AddFileSink(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = closeFn()
		sink = os.Stderr
	})

	SetDefaultStructuredLoggerWithLevel("test", "v0.0.0", "info")
	slog.Info("file sink check", "key", "value")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "file sink check"))
	assert.True(t, strings.Contains(string(data), `"module":"test"`))
}

func TestAddFileSinkBadPath(t *testing.T) {
	_, err := AddFileSink(filepath.Join(t.TempDir(), "missing", "nvup.log"))
	assert.Error(t, err)
}
