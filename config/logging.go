package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ConfigureLogger sets the global zerolog level from LOG_LEVEL and the output
// from LOG_FORMAT ("console" for coloured human output, "json" otherwise).
func ConfigureLogger(c map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = NewLogger(c, os.Stderr)
}

// NewLogger builds a timestamped logger writing to out in the LOG_FORMAT of c.
func NewLogger(c map[string]string, out io.Writer) zerolog.Logger {
	if strings.EqualFold(GetString(c, "LOG_FORMAT", "console"), "json") {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}
