// Package audit records one human-readable line per successful mutating
// operation. The sink is best-effort: a broken or unset sink never fails the
// operation that produced the event.
package audit

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger appends audit lines to a log file.
type Logger struct {
	zl   *zap.Logger
	path string
}

// New builds a file-backed audit logger. The file is created on first write
// and appended to across runs.
func New(path string) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	zl, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build audit logger: %w", err)
	}

	return &Logger{zl: zl.Named("audit"), path: path}, nil
}

// NewNop returns a logger that discards everything. Used when the sink
// cannot be opened and in tests.
func NewNop() *Logger {
	return &Logger{zl: zap.NewNop()}
}

// Record appends one formatted line. Safe on a nil receiver; write failures
// are swallowed.
func (l *Logger) Record(format string, args ...any) {
	if l == nil || l.zl == nil {
		return
	}
	l.zl.Info(fmt.Sprintf(format, args...))
}

// Path returns the sink file path, empty for the nop logger.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Sync flushes buffered lines. Best-effort, called on shutdown.
func (l *Logger) Sync() {
	if l == nil || l.zl == nil {
		return
	}
	_ = l.zl.Sync()
}
