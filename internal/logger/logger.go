// Package logger wraps zerolog with the small logging surface the server
// uses.
package logger

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogging configures the global logger with the given level ("debug",
// "info", "warn", "error"). Unknown levels fall back to info.
func InitLogging(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(os.Stderr).Level(parsed).With().Timestamp().Logger()
}

// InfoLog logs an informational message.
func InfoLog(ctx context.Context, msg string) {
	log.Ctx(loggerCtx(ctx)).Info().Msg(msg)
}

// ErrorLog logs an error message.
func ErrorLog(ctx context.Context, msg string) {
	log.Ctx(loggerCtx(ctx)).Error().Msg(msg)
}

// loggerCtx attaches the global logger when the context carries none.
func loggerCtx(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if zerolog.Ctx(ctx).GetLevel() == zerolog.Disabled {
		return log.Logger.WithContext(ctx)
	}
	return ctx
}
