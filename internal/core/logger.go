package core

import (
	"go.uber.org/zap"
)

// NewLogger builds the process-wide logger and installs it as the zap global.
func NewLogger(logLevel string) *zap.Logger {
	level, err := zap.ParseAtomicLevel(logLevel)
	if err != nil {
		zap.L().Fatal("Invalid log level", zap.String("log_level", logLevel), zap.Error(err))
	}

	config := zap.NewProductionConfig()
	config.Level = level

	logger, err := config.Build()
	if err != nil {
		zap.L().Fatal("Failed to build logger", zap.Error(err))
	}

	zap.ReplaceGlobals(logger)

	return logger
}
