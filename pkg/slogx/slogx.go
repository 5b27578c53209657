package slogx

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config describes one process's logger. Every record carries service,
// version and env.
type Config struct {
	Service string
	Version string
	Env     string    // "dev" also adds source locations
	Level   string    // debug, info, warn, error
	Format  string    // json (default) or text
	Output  io.Writer // defaults to stdout; CLI commands pass stderr or a file
}

// New builds the logger described by cfg and makes it the slog default.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{AddSource: cfg.Env == "dev", Level: ParseLevel(cfg.Level)}

	var h slog.Handler = slog.NewJSONHandler(out, opts)
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(h).With("service", cfg.Service, "version", cfg.Version, "env", cfg.Env)
	slog.SetDefault(logger)
	return logger
}

// Discard drops everything. Tests and the stub's zero Config use it.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel accepts slog's level names (and "warning"); anything else is info.
func ParseLevel(lvl string) slog.Level {
	lvl = strings.TrimSpace(lvl)
	if strings.EqualFold(lvl, "warning") {
		return slog.LevelWarn
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(lvl)); err != nil {
		return slog.LevelInfo
	}
	return l
}
