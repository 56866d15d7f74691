// Package logger wraps zap construction so callers hold a single
// initialized logger instance.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Logger wraps a zap.Logger. Log is a no-op until Init succeeds.
type Logger struct {
	Log *zap.Logger
}

// New returns a Logger with a no-op zap instance.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init replaces the no-op logger with a production zap logger at the
// given level ("Debug", "Info", ...). Returns an error for an unknown
// level string.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = zl
	return nil
}
