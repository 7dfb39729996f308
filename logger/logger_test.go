package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, levelFromString("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, levelFromString("warning"))
	assert.Equal(t, zapcore.ErrorLevel, levelFromString("error"))
	assert.Equal(t, zapcore.InfoLevel, levelFromString("whatever"))
}

func TestNewWithFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "api.log")
	log, err := New(Config{Level: "debug", File: file})
	require.NoError(t, err)
	log.Info("hello")
	_ = log.Sync()
}
