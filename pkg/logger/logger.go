package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xketsu/weather-app/internal/config"
)

// Logger wraps a zap sugared logger configured from LoggingConfig.
type Logger struct {
	*zap.SugaredLogger
}

// New builds a logger from the logging section of the config. Unknown
// levels fall back to info.
func New(cfg config.LoggingConfig) (*Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	l, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{l.Sugar()}, nil
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}
