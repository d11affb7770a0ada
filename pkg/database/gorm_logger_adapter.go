package database

import (
	"context"
	"errors"
	"time"

	"github.com/go-arcade/menuroute/pkg/log"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// GormLoggerAdapter routes gorm logs to the zap logger.
type GormLoggerAdapter struct {
	Config logger.Config
	Level  logger.LogLevel
	sugar  *zap.SugaredLogger
}

func NewGormLoggerAdapter(config logger.Config, logLevel logger.LogLevel) *GormLoggerAdapter {
	return &GormLoggerAdapter{
		Config: config,
		Level:  logLevel,
		sugar:  log.GetLogger().Desugar().WithOptions(zap.AddCallerSkip(2)).Sugar(),
	}
}

func (l *GormLoggerAdapter) LogMode(level logger.LogLevel) logger.Interface {
	cp := *l
	cp.Level = level
	return &cp
}

func (l *GormLoggerAdapter) Info(ctx context.Context, msg string, data ...any) {
	if l.Level < logger.Info {
		return
	}
	l.sugar.Infof(msg, data...)
}

func (l *GormLoggerAdapter) Warn(ctx context.Context, msg string, data ...any) {
	if l.Level < logger.Warn {
		return
	}
	l.sugar.Warnf(msg, data...)
}

func (l *GormLoggerAdapter) Error(ctx context.Context, msg string, data ...any) {
	if l.Level < logger.Error {
		return
	}
	l.sugar.Errorf(msg, data...)
}

// Trace logs failed queries as errors, slow ones as warnings and the rest at debug.
func (l *GormLoggerAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && l.Level >= logger.Error &&
		(!errors.Is(err, logger.ErrRecordNotFound) || !l.Config.IgnoreRecordNotFoundError):
		l.sugar.Errorw("SQL query failed", "sql", sql, "rows", rows, "elapsed", elapsed.Seconds(), "error", err)
	case l.Config.SlowThreshold != 0 && elapsed > l.Config.SlowThreshold && l.Level >= logger.Warn:
		l.sugar.Warnw("Slow SQL query", "sql", sql, "rows", rows, "elapsed", elapsed.Seconds())
	case l.Level >= logger.Info:
		l.sugar.Debugw("SQL query", "sql", sql, "rows", rows, "elapsed", elapsed.Seconds())
	}
}
