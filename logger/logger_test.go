package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestInitLevels(t *testing.T) {
	defer Init("info")

	l := Init("debug")
	assert.Same(t, L, l)
	assert.True(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))

	l = Init("error")
	assert.False(t, l.Desugar().Core().Enabled(zapcore.WarnLevel))
	assert.True(t, l.Desugar().Core().Enabled(zapcore.ErrorLevel))

	l = Init("nonsense")
	assert.False(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
}

func TestWithKeepsWrapper(t *testing.T) {
	l := NewNop().With("billdate", "2024-06-15")
	assert.NotNil(t, l.SugaredLogger)
	l.Infow("ignored", "k", "v")
}
