package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormLogger routes gorm's query log into zerolog. Queries are logged at
// trace level, slow ones at warn and failures at error.
type gormLogger struct {
	log zerolog.Logger
}

func newGormLogger(logger zerolog.Logger) gormlogger.Interface {
	return gormLogger{log: logger.With().Str("component", "gorm").Logger()}
}

func (l gormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

func (l gormLogger) Info(_ context.Context, msg string, data ...any) {
	l.log.Info().Msg(fmt.Sprintf(msg, data...))
}

func (l gormLogger) Warn(_ context.Context, msg string, data ...any) {
	l.log.Warn().Msg(fmt.Sprintf(msg, data...))
}

func (l gormLogger) Error(_ context.Context, msg string, data ...any) {
	l.log.Error().Msg(fmt.Sprintf(msg, data...))
}

func (l gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)

	var ev *zerolog.Event
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		ev = l.log.Error().Err(err)
	case elapsed > slowQueryThreshold:
		ev = l.log.Warn()
	default:
		ev = l.log.Trace()
	}
	if ev == nil {
		return
	}

	sql, rows := fc()
	ev.Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query")
}
