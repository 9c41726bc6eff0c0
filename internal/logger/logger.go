package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New builds the process logger: JSON at info level in prod, text at debug level
// elsewhere. level, when set, overrides the default ("debug", "info", "warn", "error").
func New(env, level string) *slog.Logger {
	lvl := slog.LevelDebug
	if env == "prod" {
		lvl = slog.LevelInfo
	}
	if level != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err == nil {
			lvl = l
		}
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if env == "prod" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h).With("service", "library-admin")
}
