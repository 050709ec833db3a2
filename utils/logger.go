package utils

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const correlationIDKey contextKey = "correlation_id"

type Logger struct {
	service string
	zap     *zap.Logger
}

// NewLogger builds a zap-backed logger. format is "json" or "console";
// level is any zap level name and defaults to info.
func NewLogger(service, level, format string) (*Logger, error) {
	var cfg zap.Config
	if strings.EqualFold(format, "console") {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		lvl = parsed
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return WrapZap(service, zl), nil
}

func WrapZap(service string, zl *zap.Logger) *Logger {
	return &Logger{
		service: service,
		zap:     zl.With(zap.String("service", service)),
	}
}

func NewNopLogger() *Logger {
	return WrapZap("nop", zap.NewNop())
}

func (l *Logger) Debug(ctx context.Context, message string, fields ...map[string]interface{}) {
	l.zap.Debug(message, l.fields(ctx, fields)...)
}

func (l *Logger) Info(ctx context.Context, message string, fields ...map[string]interface{}) {
	l.zap.Info(message, l.fields(ctx, fields)...)
}

func (l *Logger) Warn(ctx context.Context, message string, fields ...map[string]interface{}) {
	l.zap.Warn(message, l.fields(ctx, fields)...)
}

func (l *Logger) Error(ctx context.Context, message string, fields ...map[string]interface{}) {
	l.zap.Error(message, l.fields(ctx, fields)...)
}

// Sugar exposes printf-style logging; it satisfies stripe.LeveledLoggerInterface.
func (l *Logger) Sugar() *zap.SugaredLogger {
	return l.zap.Sugar()
}

func (l *Logger) Sync() error {
	return l.zap.Sync()
}

func (l *Logger) fields(ctx context.Context, fields []map[string]interface{}) []zap.Field {
	var out []zap.Field
	if id := GetCorrelationID(ctx); id != "" {
		out = append(out, zap.String("correlation_id", id))
	}
	if len(fields) > 0 {
		for k, v := range fields[0] {
			out = append(out, zap.Any(k, v))
		}
	}
	return out
}

func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}
