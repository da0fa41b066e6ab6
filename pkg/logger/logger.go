package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	mu    sync.RWMutex
	sugar *zap.SugaredLogger
)

func init() {
	sugar = build(os.Getenv("ENVIRONMENT") != "production")
}

func build(development bool) *zap.SugaredLogger {
	var (
		l   *zap.Logger
		err error
	)
	if development {
		l, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	} else {
		l, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		l = zap.NewNop()
	}
	return l.Sugar()
}

// Init rebuilds the global logger for the given environment.
func Init(environment string) {
	mu.Lock()
	defer mu.Unlock()
	sugar = build(environment == "development")
}

// Set replaces the global logger, mostly for tests.
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	sugar = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Info(format string, v ...interface{}) {
	get().Infof(format, v...)
}

func Error(format string, v ...interface{}) {
	get().Errorf(format, v...)
}

func Debug(format string, v ...interface{}) {
	get().Debugf(format, v...)
}

func Warn(format string, v ...interface{}) {
	get().Warnf(format, v...)
}

// With returns a child logger carrying structured fields.
func With(fields ...zap.Field) *zap.Logger {
	return get().Desugar().WithOptions(zap.AddCallerSkip(-1)).With(fields...)
}

func Sync() {
	_ = get().Sync()
}
