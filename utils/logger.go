package utils

import (
	"log"

	"rentvehicle/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide structured logger. Production builds emit
// JSON at info level; development builds emit colored console output at
// debug level.
var Logger *zap.Logger

func InitializeLogger() {
	var cfg zap.Config
	if config.IsProduction() {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	Logger, err = cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
}

// GetLogger returns the global logger, initializing it on first use.
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}

// SyncLogger flushes buffered log entries during shutdown.
func SyncLogger() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
