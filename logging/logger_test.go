package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"debug": zapcore.DebugLevel,
		"warn":  zapcore.WarnLevel,
		"ERROR": zapcore.ErrorLevel,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	cfg := DefaultConfig()
	cfg.OutputPaths = []string{path}
	l, err := New(cfg)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	l.Run("id", "henon").Info("step")
	require.NoError(t, l.Sync())

	dev, err := New(DevelopmentConfig())
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))

	_, err = New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewDefault(t *testing.T) {
	assert.NotNil(t, NewDefault())
	assert.NotNil(t, Nop().Logger)
}
