// Package logger builds the bot's structured logger and keeps a bounded
// in-memory ring of recent formatted lines so operators can pull them back
// out of a running process.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ContextKey is the type for context keys used by the logger
type ContextKey string

const (
	// LoggerKey is the context key for the logger instance
	LoggerKey ContextKey = "logger"
)

// recentLimit bounds the in-memory log ring.
const recentLimit = 2000

var startedAt = time.Now()

// ring stores the most recent formatted log lines.
var ring = struct {
	mu    sync.Mutex
	lines []string
}{}

// ringWriter tees every formatted line into the ring.
type ringWriter struct{}

func (ringWriter) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	if line == "" {
		return len(p), nil
	}
	ring.mu.Lock()
	ring.lines = append(ring.lines, line)
	if len(ring.lines) > recentLimit {
		ring.lines = ring.lines[len(ring.lines)-recentLimit:]
	}
	ring.mu.Unlock()
	return len(p), nil
}

// New creates a new structured logger with default configuration. Output
// goes to stdout and into the recent-lines ring.
func New() zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	out := zerolog.MultiLevelWriter(console, zerolog.ConsoleWriter{
		Out:        ringWriter{},
		TimeFormat: time.RFC3339,
		NoColor:    true,
	})
	return zerolog.New(out).With().Timestamp().Logger()
}

// NewWithWriter creates a new structured logger with a custom writer
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// WithContext adds the logger to the context
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from the context or returns a default logger
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(zerolog.Logger); ok {
		return logger
	}
	return New()
}

// Recent returns up to limit of the most recent log lines, newest last,
// optionally filtered by a level substring (INF/WRN/ERR) and a free
// substring.
func Recent(limit int, level, contains string) []string {
	if limit <= 0 {
		limit = 200
	}
	ring.mu.Lock()
	defer ring.mu.Unlock()

	var out []string
	for _, line := range ring.lines {
		if level != "" && !strings.Contains(strings.ToUpper(line), strings.ToUpper(level)) {
			continue
		}
		if contains != "" && !strings.Contains(strings.ToLower(line), strings.ToLower(contains)) {
			continue
		}
		out = append(out, line)
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// UptimeSeconds reports how long the process has been up.
func UptimeSeconds() float64 {
	return time.Since(startedAt).Seconds()
}
