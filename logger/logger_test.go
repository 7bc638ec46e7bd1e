package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewDefaultLogger("mongo-join")
	logger.SetOutput(&buf)
	logger.SetLevel(LogLevelDebug)

	tests := []struct {
		level    LogLevel
		logFunc  func(string, ...any)
		message  string
		expected string
	}{
		{LogLevelDebug, logger.Debug, "Debug message", "DEBUG"},
		{LogLevelInfo, logger.Info, "Info message", "INFO"},
		{LogLevelWarn, logger.Warn, "Warn message", "WARN"},
		{LogLevelError, logger.Error, "Error message", "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			buf.Reset()
			tt.logFunc(tt.message)

			output := buf.String()
			assert.Contains(t, output, tt.expected)
			assert.Contains(t, output, tt.message)
			assert.Contains(t, output, "[mongo-join]")
			// a bytes.Buffer is not a terminal
			assert.NotContains(t, output, ColorReset)
		})
	}
}

func TestLogLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewDefaultLogger("")
	logger.SetOutput(&buf)
	logger.SetLevel(LogLevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden")
	assert.Zero(t, buf.Len(), "debug and info must be filtered at WARN")

	logger.Warn("shown")
	assert.NotZero(t, buf.Len())

	buf.Reset()
	logger.Error("shown")
	assert.NotZero(t, buf.Len())
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	logger := NewDefaultLogger("")
	logger.SetOutput(&buf)

	logger.LogCommand(`{"aggregate":"teams"}`, time.Millisecond)
	assert.Empty(t, buf.String(), "commands are only logged at debug level")

	logger.SetLevel(LogLevelDebug)
	logger.LogCommand("  {\"aggregate\":\"teams\"}\n", 2*time.Millisecond)
	out := buf.String()
	assert.Contains(t, out, "Command (2ms)")
	assert.True(t, strings.HasSuffix(out, "{\"aggregate\":\"teams\"}\n"))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"none", LogLevelNone},
		{"off", LogLevelNone},
		{" Debug ", LogLevelDebug},
		{"invalid", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLogLevel(tt.input))
		})
	}
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "NONE", LogLevelNone.String())
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "UNKNOWN", LogLevel(99).String())
}

func TestGlobalLogger(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	assert.IsType(t, &NullLogger{}, Or(nil))

	l := NewDefaultLogger("global")
	SetGlobalLogger(l)
	assert.Same(t, l, Or(nil))

	other := NewNullLogger()
	assert.Same(t, other, Or(other))

	SetGlobalLogger(nil)
	assert.IsType(t, &NullLogger{}, GetGlobalLogger())
}
