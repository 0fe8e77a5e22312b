package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestSetVerbose(t *testing.T) {
	t.Cleanup(func() { SetVerbose(false) })

	SetVerbose(true)
	assert.Equal(t, zapcore.DebugLevel, Level())
	assert.True(t, IsDebug())

	SetVerbose(false)
	assert.Equal(t, zapcore.InfoLevel, Level())
	assert.False(t, IsDebug())
}

func TestInit(t *testing.T) {
	t.Cleanup(func() { SetVerbose(false) })

	for _, format := range []string{"json", "console"} {
		t.Run(format, func(t *testing.T) {
			log := Init(Config{Format: format})
			require.NotNil(t, log)
			assert.Same(t, Log, log)

			SetVerbose(true)
			assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
			SetVerbose(false)
			assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
		})
	}
}
