// Package logging builds the service's slog logger from configuration.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// New returns a logger writing to stdout. Format auto picks text on a
// terminal and JSON otherwise.
func New(cfg *Config) *slog.Logger {
	return slog.New(NewHandler(cfg, os.Stdout, os.Stdout.Fd()))
}

// NewHandler builds the handler New uses. fd is consulted only for FormatAuto.
func NewHandler(cfg *Config, w io.Writer, fd uintptr) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     cfg.Level.ToSlogLevel(),
		AddSource: cfg.Source,
	}
	if cfg.Format.Resolve(fd) == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

var levels = map[Level]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// ParseLevel normalizes case and surrounding space.
func ParseLevel(s string) Level {
	return Level(strings.ToLower(strings.TrimSpace(s)))
}

func (l Level) Validate() error {
	if _, ok := levels[l]; !ok {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l)
	}
	return nil
}

// ToSlogLevel maps l to its slog level. Unknown values log at info.
func (l Level) ToSlogLevel() slog.Level {
	if lvl, ok := levels[l]; ok {
		return lvl
	}
	return slog.LevelInfo
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatAuto Format = "auto"
)

func (f Format) Validate() error {
	switch f {
	case FormatText, FormatJSON, FormatAuto:
		return nil
	default:
		return fmt.Errorf("invalid log format: %s (must be text, json, or auto)", f)
	}
}

func (f Format) Resolve(fd uintptr) Format {
	if f != FormatAuto {
		return f
	}
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	return FormatJSON
}
