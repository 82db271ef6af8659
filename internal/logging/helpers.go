package logging

import (
	"context"
	"log/slog"
)

// Err wraps err as the standard error attribute. A nil err yields an empty attr, which slog drops.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(FieldError, err)
}

// Debug, Info and Warn are no-ops on a nil logger so optional loggers need no guards.
func Debug(logger *slog.Logger, msg string, args ...any) {
	emit(logger, slog.LevelDebug, msg, args)
}

func Info(logger *slog.Logger, msg string, args ...any) {
	emit(logger, slog.LevelInfo, msg, args)
}

func Warn(logger *slog.Logger, msg string, args ...any) {
	emit(logger, slog.LevelWarn, msg, args)
}

// Error logs at error level with err attached under FieldError.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	emit(logger, slog.LevelError, msg, append(args, Err(err)))
}

func emit(logger *slog.Logger, level slog.Level, msg string, args []any) {
	if logger == nil {
		return
	}
	logger.Log(context.Background(), level, msg, args...)
}
