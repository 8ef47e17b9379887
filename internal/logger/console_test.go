package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, 1, 2, 13, 4, 5, 0, time.UTC)
}

func TestNewConsoleLogger(t *testing.T) {
	t.Run("with valid writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewConsoleLogger(buf, "DEBUG")

		require.NotNil(t, logger)
		assert.Equal(t, "debug", logger.Level())
		assert.False(t, logger.colorOutput, "buffers never get colors")
	})

	t.Run("invalid level defaults to info", func(t *testing.T) {
		logger := NewConsoleLogger(&bytes.Buffer{}, "verbose")
		assert.Equal(t, "info", logger.Level())
	})

	t.Run("nil writer discards", func(t *testing.T) {
		logger := NewConsoleLogger(nil, "info")
		assert.NotPanics(t, func() { logger.LogError("dropped") })
	})

	t.Run("nil logger discards", func(t *testing.T) {
		var logger *ConsoleLogger
		assert.NotPanics(t, func() { logger.LogInfo("dropped") })
		assert.Equal(t, "", logger.Level())
	})
}

func TestConsoleLogger_Format(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "trace")
	logger.now = fixedClock

	logger.LogInfo("removed build")

	assert.Equal(t, "[13:04:05] [INFO] removed build\n", buf.String())
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level string
		want  []string
	}{
		{"trace", []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}},
		{"debug", []string{"DEBUG", "INFO", "WARN", "ERROR"}},
		{"info", []string{"INFO", "WARN", "ERROR"}},
		{"warn", []string{"WARN", "ERROR"}},
		{"error", []string{"ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, tt.level)
			logger.LogTrace("m")
			logger.LogDebug("m")
			logger.LogInfo("m")
			logger.LogWarn("m")
			logger.LogError("m")

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.Len(t, lines, len(tt.want))
			for i, level := range tt.want {
				assert.Contains(t, lines[i], "["+level+"]")
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	assert.True(t, ValidLevel("WARN"))
	assert.True(t, ValidLevel(" error "))
	assert.False(t, ValidLevel("fatal"))
	assert.False(t, ValidLevel(""))
}
