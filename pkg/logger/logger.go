package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

type contextKey string

const (
	// DefaultTraceIDKey is the context key the trace middleware stores request ids under
	DefaultTraceIDKey contextKey = "traceID"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config holds logger configuration options
type Config struct {
	Name      string
	Format    Format
	Level     slog.Level
	Writer    io.Writer // os.Stderr when nil
	AddSource bool
}

// Logger is the structured logger every package in songvault builds on.
// The Err* variants log and hand the error back so call sites can
// `return log.Err("...", err)` in one line.
type Logger interface {
	Error(msg string, args ...any) error
	ErrorWithType(errType error, msg string, args ...any) error
	Err(msg string, err error, args ...any) error
	ErrMsg(msg string) error
	Er(msg string, err error, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
	With(args ...any) Logger
	File(name string) Logger
	Function(name string) Logger
	Timer(msg string) func()

	WithTraceID(traceID string) Logger
	TraceFromContext(ctx context.Context) Logger
}

type SlogLogger struct {
	logger *slog.Logger
}

// New creates a logger tagged with the package name. Output format follows
// LOG_FORMAT and LOG_LEVEL; under `go test` everything is discarded.
func New(name string) Logger {
	var handler slog.Handler

	switch {
	case isTestMode():
		handler = slog.NewTextHandler(io.Discard, nil)
	case os.Getenv("LOG_FORMAT") == string(FormatText):
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelFromEnv()})
	default:
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: levelFromEnv()})
	}

	return &SlogLogger{
		logger: slog.New(handler).With("package", name),
	}
}

func NewWithConfig(config Config) Logger {
	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     config.Level,
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if config.Format == FormatText {
		handler = slog.NewTextHandler(writer, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	}

	return &SlogLogger{
		logger: slog.New(handler).With("package", config.Name),
	}
}

// NewWithContext is New plus the trace id carried by ctx, if any
func NewWithContext(ctx context.Context, name string) Logger {
	return New(name).TraceFromContext(ctx)
}

// NewFromHandler wraps an existing slog handler, mostly useful in tests
func NewFromHandler(handler slog.Handler) Logger {
	return &SlogLogger{logger: slog.New(handler)}
}

func isTestMode() bool {
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, "-test.") {
			return true
		}
	}
	return false
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, DefaultTraceIDKey, traceID)
}

func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if traceID, ok := ctx.Value(DefaultTraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

func (l *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{
		logger: l.logger.With(args...),
	}
}

func (l *SlogLogger) File(name string) Logger {
	return l.With("file", name)
}

func (l *SlogLogger) Function(name string) Logger {
	return l.With("function", name)
}

func (l *SlogLogger) Error(msg string, args ...any) error {
	l.logger.Error(msg, args...)
	return fmt.Errorf("%s", msg)
}

// ErrorWithType logs msg and returns it wrapped in errType, so callers can
// match the category with errors.Is while keeping the specific message.
func (l *SlogLogger) ErrorWithType(errType error, msg string, args ...any) error {
	l.logger.Warn(msg, append([]any{"errorType", errType.Error()}, args...)...)
	return fmt.Errorf("%w: %s", errType, msg)
}

func (l *SlogLogger) Err(msg string, err error, args ...any) error {
	if err == nil {
		return nil
	}
	logArgs := append([]any{"error", err}, args...)
	l.logger.Error(msg, logArgs...)
	return err
}

func (l *SlogLogger) ErrMsg(msg string) error {
	l.logger.Error(msg)
	return fmt.Errorf("%s", msg)
}

func (l *SlogLogger) Er(msg string, err error, args ...any) {
	logArgs := append([]any{"error", err}, args...)
	l.logger.Error(msg, logArgs...)
}

func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *SlogLogger) Timer(msg string) func() {
	start := time.Now()
	l.logger.Debug("Starting", "operation", msg)

	return func() {
		duration := time.Since(start)
		l.logger.Info("Timer Completed",
			"operation", msg,
			"duration_ms", duration.Milliseconds(),
		)
	}
}

func (l *SlogLogger) WithTraceID(traceID string) Logger {
	return l.With("traceID", traceID)
}

func (l *SlogLogger) TraceFromContext(ctx context.Context) Logger {
	traceID := TraceIDFromContext(ctx)
	if traceID == "" {
		return l
	}
	return l.WithTraceID(traceID)
}
