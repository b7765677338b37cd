package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds a structured JSON logger tagged with the service name.
// Unknown levels fall back to info.
func New(service string, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(os.Stdout).
		Level(lvl).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}
