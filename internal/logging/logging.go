package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures zerolog with a human-readable console writer. Contexts
// without a request logger fall back to the global logger.
func Setup(development bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	if development {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	cw := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stdout
		w.TimeFormat = time.RFC3339
	})

	log.Logger = zerolog.New(cw).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger
}
