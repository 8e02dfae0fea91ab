package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/infrastructure/config"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LogConfig
		enabled zapcore.Level
		skipped zapcore.Level
	}{
		{name: "json info", cfg: config.LogConfig{Level: "info", Format: "json"}, enabled: zapcore.InfoLevel, skipped: zapcore.DebugLevel},
		{name: "console debug", cfg: config.LogConfig{Level: "debug", Format: "console"}, enabled: zapcore.DebugLevel, skipped: zapcore.DebugLevel - 1},
		{name: "invalid level falls back to info", cfg: config.LogConfig{Level: "invalid", Format: "json"}, enabled: zapcore.InfoLevel, skipped: zapcore.DebugLevel},
		{name: "error level", cfg: config.LogConfig{Level: "error", Format: "json"}, enabled: zapcore.ErrorLevel, skipped: zapcore.WarnLevel},
		{name: "warn level", cfg: config.LogConfig{Level: "warn", Format: "console"}, enabled: zapcore.WarnLevel, skipped: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := NewLogger(&tt.cfg, "model-server")

			assert.NoError(t, err)
			assert.NotNil(t, log)
			assert.True(t, log.Core().Enabled(tt.enabled))
			assert.False(t, log.Core().Enabled(tt.skipped))
		})
	}

	t.Run("works without service name", func(t *testing.T) {
		log, err := NewLogger(&config.LogConfig{Level: "info", Format: "json"}, "")

		assert.NoError(t, err)
		assert.NotNil(t, log)
	})
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.log")

	log, err := NewLogger(&config.LogConfig{Level: "info", Format: "json", Output: path}, "chat")
	require.NoError(t, err)

	log.Info("Generator ready", zap.String("provider", "gemini"))
	log.Debug("dropped")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"message":"Generator ready"`)
	assert.Contains(t, out, `"service":"chat"`)
	assert.Contains(t, out, `"provider":"gemini"`)
	assert.Contains(t, out, `"timestamp":`)
	assert.NotContains(t, out, "dropped")
}

func TestNewLogger_ConsoleFileHasNoColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.log")

	log, err := NewLogger(&config.LogConfig{Level: "info", Format: "console", Output: path}, "model")
	require.NoError(t, err)

	log.Warn("Model not loaded")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "WARN")
	assert.NotContains(t, string(data), "\x1b[")
}

func TestNewLogger_BadOutput(t *testing.T) {
	_, err := NewLogger(&config.LogConfig{Level: "info", Output: filepath.Join(t.TempDir(), "missing", "dir", "x.log")}, "chat")

	assert.ErrorContains(t, err, "failed to open log output")
}
