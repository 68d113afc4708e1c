package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_LevelParsing(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New(tt.level, "json")
			require.NotNil(t, l)
			assert.True(t, l.Core().Enabled(tt.expected))
			if tt.expected > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.expected-1))
			}
		})
	}
}

func TestZapAdapter_FieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).
		WithFields(map[string]interface{}{"taskType": "handle-chat-message"})

	log.WithError(errors.New("boom")).Warn("lookup failed", map[string]interface{}{
		"sessionId": "s-1",
		"cause":     errors.New("timeout"),
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "lookup failed", entry.Message)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, "handle-chat-message", fields["taskType"])
	assert.Equal(t, "s-1", fields["sessionId"])
	assert.Equal(t, "boom", fields["error"])
	assert.Equal(t, "timeout", fields["cause"])
}

func TestNoOpLogger(t *testing.T) {
	log := NewNoOpLogger()
	assert.NotPanics(t, func() {
		log.With(map[string]interface{}{"a": 1}).Info("ignored", nil)
	})
}
