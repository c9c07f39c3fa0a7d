package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger adapts a zap logger to gorm's logger.Interface.
type GormLogger struct {
	zl           *zap.Logger
	level        gormlogger.LogLevel
	slowAfter    time.Duration
	skipNotFound bool
}

type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the latency above which a query is logged as slow.
func WithSlowThreshold(d time.Duration) GormLoggerOption {
	return func(l *GormLogger) { l.slowAfter = d }
}

// WithIgnoreRecordNotFoundError controls whether ErrRecordNotFound is logged.
func WithIgnoreRecordNotFoundError(skip bool) GormLoggerOption {
	return func(l *GormLogger) { l.skipNotFound = skip }
}

func NewGormLogger(zl *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	l := &GormLogger{
		zl:           zl.Named("gorm"),
		level:        level,
		slowAfter:    200 * time.Millisecond,
		skipNotFound: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.zl.Sugar().Infof(msg, args...)
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.zl.Sugar().Warnf(msg, args...)
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.zl.Sugar().Errorf(msg, args...)
	}
}

// Trace logs a finished query. Errors log at error level, queries slower than
// the threshold at warn, everything else at debug.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	query, rows := fc()

	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", query),
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}

	switch {
	case err != nil && l.level >= gormlogger.Error:
		if l.skipNotFound && errors.Is(err, gormlogger.ErrRecordNotFound) {
			return
		}
		l.zl.Error("sql error", append(fields, zap.Error(err))...)
	case l.slowAfter > 0 && elapsed > l.slowAfter && l.level >= gormlogger.Warn:
		l.zl.Warn("slow sql", append(fields, zap.Duration("threshold", l.slowAfter))...)
	case l.level >= gormlogger.Info:
		l.zl.Debug("sql trace", fields...)
	}
}

// MapGormLogLevel translates the application log level into a gorm one.
// Unknown values map to warn so query noise stays out of production logs.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "warn":
		return gormlogger.Warn
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
