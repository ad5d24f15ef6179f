package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the console logger. Diagnostics go to stderr so command output
// stays pipeable.
func New(level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(output).With().
		Timestamp().
		Logger().
		Level(lvl)
}
