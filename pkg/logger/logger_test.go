package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xketsu/weather-app/internal/config"
)

func TestNew(t *testing.T) {
	log, err := New(config.LoggingConfig{Level: "debug", Development: true})
	require.NoError(t, err)
	assert.NotNil(t, log)
	log.Debugw("debug message", "key", "value")
}

func TestNew_UnknownLevelFallsBack(t *testing.T) {
	log, err := New(config.LoggingConfig{Level: "chatty"})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Infow("discarded")
	log.Errorw("also discarded")
}
