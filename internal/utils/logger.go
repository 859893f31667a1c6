package utils

import (
	"go.uber.org/zap"
)

// Logger is the structured logger for the application
type Logger struct {
	zap *zap.Logger
}

// NewLogger creates a production JSON logger. Development mode switches to
// the human-readable console encoder.
func NewLogger(development bool) *Logger {
	var (
		l   *zap.Logger
		err error
	)
	if development {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		l = zap.NewNop()
	}

	return &Logger{zap: l}
}

// NewNopLogger returns a logger that discards everything
func NewNopLogger() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// NewLoggerFrom wraps an existing zap logger
func NewLoggerFrom(l *zap.Logger) *Logger {
	return &Logger{zap: l}
}

// With returns a child logger carrying the given fields
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zap: l.zap.With(fields...)}
}

// Info logs an informational message
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}

// Warn logs a warning
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.zap.Warn(msg, fields...)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.zap.Error(msg, fields...)
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.zap.Sync()
}
