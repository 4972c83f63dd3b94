package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/tidex114/est-backend/internal/config"
)

// Err builds the attribute every component uses for errors.
var Err = tint.Err

// New creates a preconfigured slog.Logger writing to stdout.
func New(cfg *config.Config) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg.LogFormat, cfg.LogLevel)
}

// NewWithWriter builds a JSON logger, or a colorized console logger for the text format.
func NewWithWriter(w io.Writer, format string, level slog.Level) *slog.Logger {
	if format == config.LogFormatText {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
