// Package logging builds hike's zap logger. The terminal belongs to the
// interface, so logs go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileName is the log file created in the state directory.
const FileName = "hike.log"

// New builds a JSON logger writing to FileName in dir. Debug lowers the
// level from Info to Debug.
func New(dir string, debug bool) (*zap.Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}

	config := zap.NewProductionConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.OutputPaths = []string{filepath.Join(dir, FileName)}
	config.ErrorOutputPaths = []string{filepath.Join(dir, FileName)}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// NewOrNop is New, falling back to a no-op logger when the log file cannot
// be opened.
func NewOrNop(dir string, debug bool) *zap.Logger {
	logger, err := New(dir, debug)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
