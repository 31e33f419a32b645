package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/ncobase/taskmate/config"
	"github.com/ncobase/taskmate/ctxutil"
	"github.com/sirupsen/logrus"
)

// Key constants
const (
	VersionKey = "version"
)

// Logger wraps logrus with context-aware helpers.
type Logger struct {
	*logrus.Logger
	version string
	logFile *os.File
}

var (
	standardLogger *Logger
	once           sync.Once
)

// StdLogger returns the singleton logger instance
func StdLogger() *Logger {
	once.Do(func() {
		standardLogger = &Logger{Logger: logrus.New()}
		standardLogger.SetOutput(os.Stderr)
		standardLogger.SetLevel(logrus.WarnLevel)
	})
	return standardLogger
}

// New builds a standalone logger from config. The returned cleanup closes any
// opened log file.
func New(c *config.Logger) (*Logger, func(), error) {
	l := &Logger{Logger: logrus.New()}
	cleanup, err := l.Init(c)
	if err != nil {
		return nil, nil, err
	}
	return l, cleanup, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	l := &Logger{Logger: logrus.New()}
	l.SetOutput(io.Discard)
	return l
}

// SetVersion sets the version for logging
func (l *Logger) SetVersion(v string) {
	l.version = v
}

// Init configures the logger with the given configuration
func (l *Logger) Init(c *config.Logger) (func(), error) {
	if c == nil {
		return func() {}, nil
	}
	l.SetLevel(logrus.Level(c.Level))

	var formatter logrus.Formatter
	switch c.Format {
	case "json":
		formatter = &logrus.JSONFormatter{}
	default:
		formatter = &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}
	}
	if c.Desensitization != nil && c.Desensitization.Enabled {
		formatter = &desensitizingFormatter{next: formatter, d: NewDesensitizer(c.Desensitization)}
	}
	l.SetFormatter(formatter)

	switch c.Output {
	case "stdout":
		l.SetOutput(os.Stdout)
	case "discard":
		l.SetOutput(io.Discard)
	case "file":
		if c.OutputFile == "" {
			return nil, fmt.Errorf("logger: output_file is required for file output")
		}
		if err := os.MkdirAll(filepath.Dir(c.OutputFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(c.OutputFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o600)
		if err != nil {
			return nil, err
		}
		l.logFile = f
		l.SetOutput(f)
	default:
		l.SetOutput(os.Stderr)
	}

	return func() {
		if l.logFile != nil {
			_ = l.logFile.Close()
			l.logFile = nil
		}
	}, nil
}

// entryFromContext creates a new log entry with fields from context
func (l *Logger) entryFromContext(ctx context.Context) *logrus.Entry {
	fields := logrus.Fields{}

	if traceID := ctxutil.GetTraceID(ctx); traceID != "" {
		fields[ctxutil.TraceIDKey] = traceID
	}
	if screen := ctxutil.GetScreen(ctx); screen != "" {
		fields[ctxutil.ScreenKey] = screen
	}
	if l.version != "" {
		fields[VersionKey] = l.version
	}

	return l.WithFields(fields)
}

// EntryWithFields returns an entry carrying context fields plus the given ones.
func (l *Logger) EntryWithFields(ctx context.Context, fields logrus.Fields) *logrus.Entry {
	return l.entryFromContext(ctx).WithFields(fields)
}

func (l *Logger) logf(ctx context.Context, level logrus.Level, format string, args ...any) {
	l.entryFromContext(ctx).Logf(level, format, args...)
}

func (l *Logger) Debugf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.DebugLevel, format, args...)
}
func (l *Logger) Infof(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.InfoLevel, format, args...)
}
func (l *Logger) Warnf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.WarnLevel, format, args...)
}
func (l *Logger) Errorf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.ErrorLevel, format, args...)
}

// Exported functions operating on the standard logger

func SetVersion(v string)                   { StdLogger().SetVersion(v) }
func Init(c *config.Logger) (func(), error) { return StdLogger().Init(c) }

func EntryWithFields(ctx context.Context, fields logrus.Fields) *logrus.Entry {
	return StdLogger().EntryWithFields(ctx, fields)
}

func Debugf(ctx context.Context, format string, args ...any) {
	StdLogger().Debugf(ctx, format, args...)
}
func Infof(ctx context.Context, format string, args ...any) {
	StdLogger().Infof(ctx, format, args...)
}
func Warnf(ctx context.Context, format string, args ...any) {
	StdLogger().Warnf(ctx, format, args...)
}
func Errorf(ctx context.Context, format string, args ...any) {
	StdLogger().Errorf(ctx, format, args...)
}

func SetOutput(out io.Writer) { StdLogger().SetOutput(out) }
func SetLevel(level int)      { StdLogger().SetLevel(logrus.Level(level)) }
