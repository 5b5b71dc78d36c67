package logger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestResolveLevel(t *testing.T) {
	level, err := resolveLevel(Config{})
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, level)

	level, err = resolveLevel(Config{Level: "warn", Debug: true})
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level)

	_, err = resolveLevel(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestSamplingDefaults(t *testing.T) {
	window, initial, thereafter := sampling(Config{})
	assert.Equal(t, time.Second, window)
	assert.Equal(t, 100, initial)
	assert.Equal(t, 100, thereafter)

	window, initial, thereafter = sampling(Config{SamplingWindow: time.Minute, SamplingInitial: 5, SamplingThereafter: 50})
	assert.Equal(t, time.Minute, window)
	assert.Equal(t, 5, initial)
	assert.Equal(t, 50, thereafter)
}

func TestNewAppliesDebugLoggers(t *testing.T) {
	previous := zap.L()
	log, err := New(nil, Config{Level: "error", DebugLoggers: []string{"sales"}})
	require.NoError(t, err)
	t.Cleanup(func() { zap.ReplaceGlobals(previous) })

	assert.NotNil(t, log.Named("sales.service").Check(zapcore.DebugLevel, "order created"))
	assert.Nil(t, log.Named("catalog.service").Check(zapcore.InfoLevel, "product created"))
	assert.NotNil(t, log.Named("catalog.service").Check(zapcore.ErrorLevel, "product failed"))
}
