// Package log собирает логгер приложения поверх log/slog.
package log

import (
	"io"
	"log/slog"
)

// ParseLevel переводит уровень из конфигурации в slog.Level; неизвестное значение дает info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New создает логгер с маскировкой учетных данных, пишущий в w в формате format (text или json).
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return NewMaskedLogger(handler)
}
