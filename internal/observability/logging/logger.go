// Package logging builds the process-wide structured logger. Every
// component logs through slog with a service attribute so log lines
// from the API and the evaluation runner stay distinguishable.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// ParseLevel maps a config string onto a slog level. The second return
// reports whether the value was recognised.
func ParseLevel(level string) (slog.Level, bool) {
	lvl, ok := levels[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return slog.LevelInfo, false
	}
	return lvl, true
}

// NewJSONLogger returns a JSON logger scoped to the given service. An
// unknown level falls back to info and is reported on the new logger
// rather than silently ignored.
func NewJSONLogger(service, level string) *slog.Logger {
	lvl, known := ParseLevel(level)
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	})
	logger := slog.New(handler).With("service", service)
	if !known && strings.TrimSpace(level) != "" {
		logger.Warn("unknown_log_level", "level", level, "using", lvl.String())
	}
	return logger
}
