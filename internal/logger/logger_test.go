package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, ParseLevel(in))
		})
	}
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("debug", "json")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, l.Level())

	l.SetLevel("error")
	assert.Equal(t, zapcore.ErrorLevel, l.Level())
}

func TestLoggerWritesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core)).With("component", "refresher")

	l.Info("refresh succeeded", "records", 12)
	l.Warn("refresh failed", "error", "timeout")
	l.Debug("tick")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "refresh succeeded", entries[0].Message)
	assert.Equal(t, int64(12), entries[0].ContextMap()["records"])
	assert.Equal(t, "refresher", entries[1].ContextMap()["component"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestNopLogger(t *testing.T) {
	l := NewNop()
	l.Error("ignored", "k", "v")
	assert.NotNil(t, l.Zap())
}
