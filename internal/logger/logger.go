package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/codecravings/playbian-auto-typer/pkg/models"
)

var globalLogger *slog.Logger

// Init initializes the global logger based on application settings.
// It should be called once during application startup. If w is nil,
// output goes to stdout.
func Init(settings models.Settings, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	var level slog.Level
	switch strings.ToLower(settings.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", settings.LogLevel)
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(settings.LogFormat) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return fmt.Errorf("invalid log format: %s", settings.LogFormat)
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
	return nil
}

// L returns the initialized global logger instance. If Init has not been
// called it falls back to the process default logger rather than panicking.
func L() *slog.Logger {
	if globalLogger == nil {
		return slog.Default()
	}
	return globalLogger
}
