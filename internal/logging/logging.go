// Package logging provides structured logging helpers built on log/slog.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

type contextKey int

const (
	loggerKey contextKey = iota
	requestIDKey
)

// New creates a JSON logger writing to w at the given level
// ("debug", "info", "warn" or "error"; anything else means info).
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// Default returns the process logger. It writes to stderr because stdout
// carries the MCP stdio transport.
func Default() *slog.Logger {
	return New(os.Stderr, os.Getenv("DOCNAV_LOG_LEVEL"))
}

// ParseLevel converts a level name to a slog level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithTool returns a logger annotated with an MCP tool name.
func WithTool(name string) *slog.Logger {
	return slog.Default().With(slog.String("tool", name))
}

// WithComponent returns a logger annotated with a component name.
func WithComponent(logger *slog.Logger, name string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(slog.String("component", name))
}

// ContextWithLogger stores logger in ctx.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext returns the logger stored in ctx, or the default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// ContextWithRequestID stores a request correlation id in ctx and annotates
// the context logger with it.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	return ContextWithLogger(ctx, LoggerFromContext(ctx).With(slog.String("request_id", requestID)))
}

// RequestIDFromContext returns the request correlation id stored in ctx.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RequestEnd logs the completion of an operation.
func RequestEnd(ctx context.Context, operation string, success bool, duration time.Duration, err error) {
	attrs := []any{
		slog.String("operation", operation),
		slog.Bool("success", success),
		slog.Duration("duration", duration),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		LoggerFromContext(ctx).WarnContext(ctx, "Request completed with error", attrs...)
		return
	}
	LoggerFromContext(ctx).InfoContext(ctx, "Request completed", attrs...)
}
