package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerWritesStructuredFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewLoggerFrom(zap.New(core)).With(zap.String("component", "test"))

	logger.Info("mail created", zap.Int64("mail_id", 3))
	logger.Error("storage failure", zap.Error(errors.New("connection reset")))
	logger.Warn("slow query")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "mail created", entries[0].Message)
	assert.Equal(t, "test", entries[0].ContextMap()["component"])
	assert.Equal(t, int64(3), entries[0].ContextMap()["mail_id"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "connection reset", entries[1].ContextMap()["error"])
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	assert.NotPanics(t, func() {
		logger.Info("ignored")
		_ = logger.Sync()
	})
}
