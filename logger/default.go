package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// DefaultLogger is the default logger implementation
type DefaultLogger struct {
	mu     sync.RWMutex
	level  LogLevel
	logger *log.Logger
	prefix string
	color  bool
}

// NewDefaultLogger creates a new default logger writing to stdout
func NewDefaultLogger(prefix string) *DefaultLogger {
	return &DefaultLogger{
		level:  LogLevelInfo,
		logger: log.New(os.Stdout, "", 0),
		prefix: prefix,
		color:  isTerminal(os.Stdout),
	}
}

// SetLevel sets the logging level
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current logging level
func (l *DefaultLogger) GetLevel() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// SetOutput sets the output writer. Colors are only kept for terminals.
func (l *DefaultLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetOutput(w)
	l.color = isTerminal(w)
}

func (l *DefaultLogger) header(level LogLevel) string {
	timestamp := time.Now().Format("15:04:05.000")
	levelStr := level.String()
	if l.color {
		levelStr = GetLevelColor(level) + levelStr + ColorReset
	}
	if l.prefix != "" {
		return fmt.Sprintf("%s [%s] %s", timestamp, l.prefix, levelStr)
	}
	return fmt.Sprintf("%s %s", timestamp, levelStr)
}

// log logs a message at the specified level
func (l *DefaultLogger) log(level LogLevel, format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.level >= level {
		l.logger.Printf("%s: %s", l.header(level), fmt.Sprintf(format, args...))
	}
}

// Debug logs a debug message
func (l *DefaultLogger) Debug(format string, args ...any) {
	l.log(LogLevelDebug, format, args...)
}

// Info logs an info message
func (l *DefaultLogger) Info(format string, args ...any) {
	l.log(LogLevelInfo, format, args...)
}

// Warn logs a warning message
func (l *DefaultLogger) Warn(format string, args ...any) {
	l.log(LogLevelWarn, format, args...)
}

// Error logs an error message
func (l *DefaultLogger) Error(format string, args ...any) {
	l.log(LogLevelError, format, args...)
}

// LogCommand logs a store command at debug level
func (l *DefaultLogger) LogCommand(command string, duration time.Duration) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.level >= LogLevelDebug {
		l.logger.Printf("%s: Command (%v):\n%s", l.header(LogLevelDebug), duration, strings.TrimSpace(command))
	}
}
