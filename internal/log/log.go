package log

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.Mutex
	sugar  *zap.SugaredLogger
	atomic = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Init configures the process-wide logger with the given minimum level
// ("debug", "info", "warn", "error"). Unknown values keep the info default.
// Safe to call more than once; the last call wins.
func Init(level string) {
	mu.Lock()
	defer mu.Unlock()

	if lvl, err := zapcore.ParseLevel(level); err == nil {
		atomic.SetLevel(lvl)
	}
	if sugar == nil {
		sugar = build()
	}
}

func build() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = atomic
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// zap's console config cannot realistically fail to build; fall back
		// to a no-op logger rather than crashing the caller.
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

func logger() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	if sugar == nil {
		sugar = build()
	}
	return sugar
}

// Debug logs at debug level with alternating key/value pairs.
func Debug(msg string, kv ...any) {
	logger().Debugw(msg, kv...)
}

// Info logs at info level with alternating key/value pairs.
func Info(msg string, kv ...any) {
	logger().Infow(msg, kv...)
}

// Warn logs at warn level with alternating key/value pairs.
func Warn(msg string, kv ...any) {
	logger().Warnw(msg, kv...)
}

// Error logs at error level; err is prepended to the key/value pairs under
// the "err" key.
func Error(msg string, err error, kv ...any) {
	extended := append([]any{"err", err}, kv...)
	logger().Errorw(msg, extended...)
}
