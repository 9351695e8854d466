package logging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	_ gormlogger.Interface = (*GormLogger)(nil)
	_ gorm.ParamsFilter    = (*GormLogger)(nil)
)

// GormLogger direciona os logs do gorm para o slog, cada evento no nível que lhe cabe:
// falhas em ERROR, consultas lentas em WARN e o trace de SQL em DEBUG
type GormLogger struct {
	logger        *slog.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger cria a ponte gorm → slog
// Registro não encontrado é um resultado normal de consulta e não é logado
func NewGormLogger(l *SlogLogger, level string, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{
		logger:        l.Slog().With("component", "gorm"),
		level:         gormLevel(level),
		slowThreshold: slowThreshold,
	}
}

func gormLevel(level string) gormlogger.LogLevel {
	switch ParseLevel(level) {
	case slog.LevelDebug:
		return gormlogger.Info
	case slog.LevelError:
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		l.logger.InfoContext(ctx, fmt.Sprintf(msg, data...), withTrace(ctx, nil)...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.logger.WarnContext(ctx, fmt.Sprintf(msg, data...), withTrace(ctx, nil)...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		l.logger.ErrorContext(ctx, fmt.Sprintf(msg, data...), withTrace(ctx, nil)...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	attrs := func() []any {
		sql, rows := fc()
		return withTrace(ctx, []any{
			"sql", sql,
			"rows", rows,
			"elapsed_ms", float64(elapsed.Nanoseconds()) / 1e6,
			"source", utils.FileWithLineNum(),
		})
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		l.logger.ErrorContext(ctx, "query failed", append(attrs(), "error", err)...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		l.logger.WarnContext(ctx, "slow query", append(attrs(), "threshold", l.slowThreshold.String())...)
	case l.level >= gormlogger.Info:
		l.logger.DebugContext(ctx, "query", attrs()...)
	}
}

// ParamsFilter mantém os valores fora do SQL logado
func (l *GormLogger) ParamsFilter(_ context.Context, sql string, _ ...interface{}) (string, []interface{}) {
	return sql, nil
}
