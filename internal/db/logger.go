package db

import (
	"fmt"
	"log/slog"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// SlowQueryThreshold marks ORM statements logged as slow.
const SlowQueryThreshold = 200 * time.Millisecond

type slogWriter struct {
	logger *slog.Logger
}

func (w slogWriter) Printf(format string, args ...any) {
	w.logger.Info(fmt.Sprintf(format, args...))
}

// NewGormLogger routes gorm output into logger. With verbose set every
// statement is logged; otherwise only slow statements and errors are.
func NewGormLogger(logger *slog.Logger, verbose bool) gormlogger.Interface {
	level := gormlogger.Warn
	if verbose {
		level = gormlogger.Info
	}
	return gormlogger.New(slogWriter{logger: logger.With(slog.String("component", "orm"))}, gormlogger.Config{
		SlowThreshold:             SlowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
