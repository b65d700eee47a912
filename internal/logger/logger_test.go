package logger

import (
	"testing"

	"quizforge/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// Get and Sync must be safe before Initialize has run.
func TestUninitializedLoggerIsSafe(t *testing.T) {
	log = nil

	assert.NotPanics(t, func() {
		Get().Info("noop logger swallows this")
	})
	assert.NotPanics(t, func() {
		_ = Sync()
	})
}

func TestInitialize(t *testing.T) {
	log = nil

	require.NoError(t, Initialize(config.LoggerConfig{Level: "debug", Env: "production"}))
	assert.NotNil(t, Get())
	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))
}
