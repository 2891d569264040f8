package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Development gets a human console writer,
// everything else structured JSON.
func New(environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if environment == "development" || environment == "dev" {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		return zerolog.New(output).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
