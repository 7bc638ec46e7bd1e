package logger

import (
	"io"
	"time"
)

// Logger interface defines core logging methods
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)

	// LogCommand logs a store command (an aggregate pipeline) with its duration
	LogCommand(command string, duration time.Duration)

	// Configuration
	SetLevel(level LogLevel)
	GetLevel() LogLevel
	SetOutput(w io.Writer)
}
