package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogWriter is shared by the slog handler and the gin access log.
var LogWriter io.Writer = os.Stdout

func Init(level string) {
	handler := slog.NewJSONHandler(LogWriter, &slog.HandlerOptions{Level: parseLevel(level)})
	slog.SetDefault(slog.New(&ContextHandler{handler}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
