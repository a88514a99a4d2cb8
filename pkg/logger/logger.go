package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once     sync.Once
	instance *zap.Logger
	level    = zapcore.InfoLevel
)

// SetLevel configures the level used when the global logger is first built.
// It has no effect after the first GetLogger call.
func SetLevel(l string) {
	if parsed, err := zapcore.ParseLevel(l); err == nil {
		level = parsed
	}
}

func GetLogger() *zap.Logger {
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stdout"}
		cfg.Level = zap.NewAtomicLevelAt(level)
		logger, err := cfg.Build()
		if err != nil {
			panic(err)
		}
		instance = logger
	})
	return instance
}
