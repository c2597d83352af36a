package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init replaces zap's global logger according to the API environment.
func Init(environment string) error {
	var conf zap.Config
	switch environment {
	case "production", "staging":
		conf = zap.NewProductionConfig()
		conf.EncoderConfig.TimeKey = "time"
		conf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		conf = zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := conf.Build()
	if err != nil {
		return fmt.Errorf("conf.Build -> %w", err)
	}

	zap.ReplaceGlobals(logger.With(zap.String("env", environment)))

	return nil
}

// Sync flushes the global logger. Errors from syncing stderr/stdout are ignored.
func Sync() {
	_ = zap.L().Sync()
}
