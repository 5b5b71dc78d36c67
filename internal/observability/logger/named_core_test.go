package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNamedLevelCore(t *testing.T) {
	inner, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(NewNamedLevelCore(inner, zapcore.InfoLevel, []string{"sales"}))

	log.Named("sales").Named("service").Debug("order total")
	log.Named("catalog.service").Debug("dropped")
	log.Named("salesman").Debug("dropped")
	log.Named("catalog.service").Info("kept")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "order total", entries[0].Message)
		assert.Equal(t, "sales.service", entries[0].LoggerName)
		assert.Equal(t, "kept", entries[1].Message)
	}
}

func TestNormalizeNames(t *testing.T) {
	assert.Equal(t, []string{"db", "sales"}, normalizeNames([]string{" db ", "", "sales"}))
}
