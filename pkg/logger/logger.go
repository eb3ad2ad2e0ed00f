package logger

import (
	"log/slog"
	"os"
	"strings"
)

var std = slog.Default()

// Init sets up the process-wide logger. Production gets JSON output,
// everything else human-readable text.
func Init(environment, level string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(environment, "production") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	std = slog.New(handler)
	slog.SetDefault(std)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

func Debug(msg string, args ...any) {
	std.Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	std.Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	std.Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	std.Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	std.Error(msg, normalize(args)...)
	os.Exit(1)
}

// normalize lets callers pass a bare error as the last argument,
// e.g. logger.Error("failed to create order", err).
func normalize(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}

	last := args[len(args)-1]
	if err, ok := last.(error); ok {
		return append(args[:len(args)-1], slog.Any("error", err))
	}

	return append(args[:len(args)-1], slog.Any("details", last))
}
