package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/rafabene/cwsite-users/internal/domain/ports"
)

// SlogLogger implementa ports.Logger usando slog do stdlib
type SlogLogger struct {
	logger *slog.Logger
}

// ParseLevel converte o nível textual da configuração em slog.Level
// Valores desconhecidos caem em info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewSlogLogger cria um novo logger JSON em stdout
func NewSlogLogger(level string) *SlogLogger {
	return NewSlogLoggerWithWriter(os.Stdout, level)
}

// NewSlogLoggerWithWriter cria um logger JSON escrevendo em w
func NewSlogLoggerWithWriter(w io.Writer, level string) *SlogLogger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return &SlogLogger{logger: slog.New(handler)}
}

func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *SlogLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, withTrace(ctx, args)...)
}

func (l *SlogLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, withTrace(ctx, args)...)
}

func (l *SlogLogger) With(args ...any) ports.Logger {
	return &SlogLogger{
		logger: l.logger.With(args...),
	}
}

// Slog expõe o *slog.Logger subjacente (usado pela ponte do gorm)
func (l *SlogLogger) Slog() *slog.Logger {
	return l.logger
}

// withTrace anexa trace_id/span_id quando há um span válido no contexto
func withTrace(ctx context.Context, args []any) []any {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return args
	}
	return append(args,
		"trace_id", sc.TraceID().String(),
		"span_id", sc.SpanID().String(),
	)
}
