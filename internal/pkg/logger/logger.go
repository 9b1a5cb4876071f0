package logger

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var global atomic.Pointer[zap.SugaredLogger]

func init() {
	global.Store(zap.NewNop().Sugar())
}

// Init builds the process logger. Production uses the JSON encoder, anything
// else the colored console encoder.
func Init(env, level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("logger: invalid level %q: %w", level, err)
	}

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("logger: failed to build: %w", err)
	}
	Set(l)
	return nil
}

// Set replaces the process logger
func Set(l *zap.Logger) {
	global.Store(l.Sugar())
}

// Sync flushes buffered entries
func Sync() {
	_ = global.Load().Sync()
}

// WithRequestID returns a context whose log entries carry id
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the request id stored in ctx
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func fromContext(ctx context.Context) *zap.SugaredLogger {
	l := global.Load()
	if ctx == nil {
		return l
	}
	if id := RequestID(ctx); id != "" {
		return l.With("request_id", id)
	}
	return l
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Debugf(format, args...)
}

func Info(ctx context.Context, msg string, keysAndValues ...interface{}) {
	fromContext(ctx).Infow(msg, keysAndValues...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Warnf(format, args...)
}

func Error(ctx context.Context, msg string, keysAndValues ...interface{}) {
	fromContext(ctx).Errorw(msg, keysAndValues...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Errorf(format, args...)
}

// Fatal logs err and exits the process
func Fatal(ctx context.Context, err error) {
	fromContext(ctx).Error(err)
	Sync()
	os.Exit(1)
}
