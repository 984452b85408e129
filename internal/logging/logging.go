// Package logging provides the line-oriented command log backed by zap.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp layout written at the start of every log line.
const TimeLayout = "2006-01-02 15:04:05"

// Config holds logging configuration.
type Config struct {
	Level      string // debug, info, warn, error
	OutputPath string // file path, appended to
}

// Logger records command outcomes: Info on success, Error on failure.
// Log never returns an error and never panics; write failures are swallowed by zap.
type Logger struct {
	z      *zap.Logger
	closer io.Closer
}

// New opens (or creates) the log file in append mode and builds a logger over it.
func New(cfg Config) (*Logger, error) {
	if cfg.OutputPath == "" {
		return nil, fmt.Errorf("log output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.OutputPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := NewWithWriter(f, cfg.Level)
	l.closer = f
	return l, nil
}

// NewWithWriter builds a logger writing to w. Unknown levels fall back to info.
func NewWithWriter(w io.Writer, level string) *Logger {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(TimeLayout),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), zap.NewAtomicLevelAt(lvl))

	return &Logger{z: zap.New(core)}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// Log records a command event. A nil err is a success.
func (l *Logger) Log(event string, err error) {
	if l == nil || l.z == nil {
		return
	}
	if err != nil {
		l.z.Error(fmt.Sprintf("%s | ERROR: %v", event, err))
		return
	}
	l.z.Info(event)
}

// Debug records diagnostic detail that is not a command outcome.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Debug(msg, fields...)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	if l == nil || l.z == nil {
		return nil
	}
	return l.z.Sync()
}

// Close flushes and closes the underlying file, if any.
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
