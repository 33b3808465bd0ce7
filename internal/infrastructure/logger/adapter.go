package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/application/port/output"
)

var _ output.LoggerPort = (*LoggerAdapter)(nil)

const defaultDir = "log"

// LoggerAdapter implements output.LoggerPort on top of a zap sugared logger.
// Args are alternating key/value pairs.
type LoggerAdapter struct {
	sugar *zap.SugaredLogger
	base  *zap.Logger
}

type Option func(*config)

type config struct {
	dir    string
	debug  bool
	stderr bool
}

// WithDir writes the log file into dir instead of ./log.
func WithDir(dir string) Option {
	return func(c *config) { c.dir = dir }
}

func WithDebug(debug bool) Option {
	return func(c *config) { c.debug = debug }
}

// WithStderr mirrors every entry to stderr.
func WithStderr() Option {
	return func(c *config) { c.stderr = true }
}

// NewLoggerAdapter opens <dir>/<timestamp>_<name>.log and logs JSON lines to it.
func NewLoggerAdapter(name string, opts ...Option) (*LoggerAdapter, error) {
	c := config{dir: defaultDir}
	for _, opt := range opts {
		opt(&c)
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	filename := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02_15-04-05"), sanitize(name))

	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{filepath.Join(c.dir, filename)}
	if c.stderr {
		zc.OutputPaths = append(zc.OutputPaths, "stderr")
	}
	zc.EncoderConfig.TimeKey = "timestamp"
	zc.EncoderConfig.MessageKey = "message"
	zc.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	zc.Sampling = nil
	if c.debug {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	z, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return FromZap(z), nil
}

// FromZap wraps an existing zap logger.
func FromZap(z *zap.Logger) *LoggerAdapter {
	return &LoggerAdapter{sugar: z.Sugar(), base: z}
}

// NewNopLogger discards everything.
func NewNopLogger() *LoggerAdapter {
	return FromZap(zap.NewNop())
}

// Zap exposes the underlying logger for components that take *zap.Logger.
func (l *LoggerAdapter) Zap() *zap.Logger {
	return l.base
}

func (l *LoggerAdapter) Debug(msg string, args ...any) {
	l.sugar.Debugw(msg, args...)
}

func (l *LoggerAdapter) Info(msg string, args ...any) {
	l.sugar.Infow(msg, args...)
}

func (l *LoggerAdapter) Warn(msg string, args ...any) {
	l.sugar.Warnw(msg, args...)
}

func (l *LoggerAdapter) Error(msg string, args ...any) {
	l.sugar.Errorw(msg, args...)
}

func (l *LoggerAdapter) WithField(key string, value any) output.LoggerPort {
	z := l.base.With(zap.Any(key, value))
	return FromZap(z)
}

func (l *LoggerAdapter) WithFields(fields map[string]any) output.LoggerPort {
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	return FromZap(l.base.With(zf...))
}

// Close flushes buffered entries. Sync errors on terminals are ignored.
func (l *LoggerAdapter) Close() error {
	if err := l.base.Sync(); err != nil && !isTerminalSyncError(err) {
		return err
	}
	return nil
}

func isTerminalSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "invalid argument") || strings.Contains(msg, "inappropriate ioctl")
}

func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, s)
	s = strings.Trim(s, "_")
	if s == "" {
		return "run"
	}
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}
