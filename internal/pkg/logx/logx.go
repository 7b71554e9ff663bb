/*
Package logx provides a structured logging wrapper based on zerolog.

It initializes the global logger, picking a human-readable console writer in
development and JSON in production, and exposes small level helpers that
accept key-value field pairs.
*/
package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog instance. Development gets Debug level
// with a colored console writer; production gets Info level JSON.
func Init(isDevelopment bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if isDevelopment {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	log.Logger = logger.With().Caller().Logger()
}

// Logger returns the global zerolog.Logger instance.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// pairs guards against an odd field count, which would make zerolog panic.
func pairs(fields []any) []any {
	if len(fields)%2 != 0 {
		Logger().Warn().
			Int("fields_count", len(fields)).
			Msg("Log call received odd number of fields, fields ignored")
		return nil
	}
	return fields
}

// Info records a message at Info level with optional key-value fields.
func Info(msg string, fields ...any) {
	Logger().Info().Fields(pairs(fields)).CallerSkipFrame(1).Msg(msg)
}

// Warn records a message at Warn level with optional key-value fields.
func Warn(msg string, fields ...any) {
	Logger().Warn().Fields(pairs(fields)).CallerSkipFrame(1).Msg(msg)
}

// Error records an error at Error level with optional key-value fields.
func Error(err error, msg string, fields ...any) {
	Logger().Error().Err(err).Fields(pairs(fields)).CallerSkipFrame(1).Msg(msg)
}

// Fatal records the error at Fatal level and terminates the process.
func Fatal(err error, msg string, fields ...any) {
	Logger().Fatal().Err(err).Fields(pairs(fields)).CallerSkipFrame(1).Msg(msg)
}
