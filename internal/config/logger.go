package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/MatusOllah/slogcolor"
	"github.com/fatih/color"
)

// NewLogger builds the process logger: coloured text in development, JSON
// everywhere else.
func NewLogger(cfg *Config) *slog.Logger {
	level := ParseLevel(cfg.Log.Level)

	if cfg.IsDevelopment() {
		opts := slogcolor.DefaultOptions
		opts.Level = level
		opts.MsgColor = color.New(color.FgMagenta)
		opts.SrcFileMode = slogcolor.Nop
		return slog.New(slogcolor.NewHandler(os.Stderr, opts))
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// ParseLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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
