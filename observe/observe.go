package observe

import (
	"context"
	"log/slog"
)

// Attribute is a key-value pair attached to a log entry.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute { return Attribute{Key: key, Value: value} }

// Int creates an integer attribute.
func Int(key string, value int) Attribute { return Attribute{Key: key, Value: value} }

// Err creates an "error" attribute from err. A nil err yields an empty
// string rather than a nil interface, so it still renders sensibly in a log
// line that always reports an error field.
func Err(err error) Attribute {
	if err == nil {
		return Attribute{Key: "error", Value: ""}
	}
	return Attribute{Key: "error", Value: err.Error()}
}

// Logger is the structured logging surface a flow runtime depends on.
// Worker errors, delivery errors, and graph/flow lifecycle transitions are
// reported through it rather than directly through log/slog, so an
// embedding application can redirect or silence them by supplying its own
// Logger (for example through flow.WithLogger).
type Logger interface {
	Debug(ctx context.Context, msg string, attrs ...Attribute)
	Info(ctx context.Context, msg string, attrs ...Attribute)
	Warn(ctx context.Context, msg string, attrs ...Attribute)
	Error(ctx context.Context, msg string, attrs ...Attribute)
}

// slogLogger adapts a *slog.Logger to [Logger], mirroring the teacher's own
// slog-backed observability adapter: attributes are translated to
// slog.Attr, and the target *slog.Logger is supplied by the caller rather
// than fixed to a global sink.
type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps l as a [Logger]. A nil l falls back to slog.Default().
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return &slogLogger{l: l}
}

func toSlogAttrs(attrs []Attribute) []any {
	out := make([]any, 0, len(attrs)*2)
	for _, a := range attrs {
		out = append(out, a.Key, a.Value)
	}
	return out
}

func (s *slogLogger) Debug(ctx context.Context, msg string, attrs ...Attribute) {
	s.l.DebugContext(ctx, msg, toSlogAttrs(attrs)...)
}

func (s *slogLogger) Info(ctx context.Context, msg string, attrs ...Attribute) {
	s.l.InfoContext(ctx, msg, toSlogAttrs(attrs)...)
}

func (s *slogLogger) Warn(ctx context.Context, msg string, attrs ...Attribute) {
	s.l.WarnContext(ctx, msg, toSlogAttrs(attrs)...)
}

func (s *slogLogger) Error(ctx context.Context, msg string, attrs ...Attribute) {
	s.l.ErrorContext(ctx, msg, toSlogAttrs(attrs)...)
}

// noopLogger discards everything. Used as the default when no logger is
// configured, so call sites never need a nil check.
type noopLogger struct{}

func (noopLogger) Debug(context.Context, string, ...Attribute) {}
func (noopLogger) Info(context.Context, string, ...Attribute)  {}
func (noopLogger) Warn(context.Context, string, ...Attribute)  {}
func (noopLogger) Error(context.Context, string, ...Attribute) {}

// NewNoop returns a Logger that discards every entry.
func NewNoop() Logger { return noopLogger{} }
