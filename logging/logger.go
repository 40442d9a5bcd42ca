package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// RootLogger is the parent of every component logger. Components derive
// their own with RootLogger.With().Str("Component", name).Logger().
var RootLogger zerolog.Logger = zerolog.New(
	zerolog.NewConsoleWriter(
		func(w *zerolog.ConsoleWriter) { w.Out = os.Stderr },
		func(w *zerolog.ConsoleWriter) { w.TimeFormat = "15:04:05.000" })).Level(zerolog.InfoLevel).
	With().Timestamp().Logger()

// SetLevel changes the level of RootLogger. Loggers derived before the
// call keep their old level.
func SetLevel(level zerolog.Level) {
	RootLogger = RootLogger.Level(level)
}
