package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		verbose  bool
		env      string
		expected zapcore.Level
	}{
		{false, "", zapcore.InfoLevel},
		{true, "", zapcore.DebugLevel},
		{false, "debug", zapcore.DebugLevel},
		{true, "error", zapcore.ErrorLevel},
		{false, " WARN ", zapcore.WarnLevel},
		{true, "bogus", zapcore.DebugLevel},
		{false, "bogus", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, level(tt.verbose, tt.env), "level(%v, %q)", tt.verbose, tt.env)
	}
}

func TestNew(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	logger, err := New(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}
