package logging

import (
	"log/slog"
	"os"

	"PhotoQuizBot/internal/config"
)

// InitLogger настраивает глобальный slog: текст для локальной разработки,
// JSON для прода.
func InitLogger(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.AppEnv == "local" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
