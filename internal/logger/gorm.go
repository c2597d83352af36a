package logger

import (
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

type gormWriter struct {
	sugar *zap.SugaredLogger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.sugar.Infof(format, args...)
}

// NewGormLogger routes gorm's SQL logging through the global zap logger.
func NewGormLogger(environment string) gormlogger.Interface {
	level := gormlogger.Warn
	if environment == "development" {
		level = gormlogger.Info
	}

	return gormlogger.New(
		gormWriter{sugar: zap.S().Named("gorm")},
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
