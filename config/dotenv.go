package config

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Load reads the first .env file found next to the binary or one level up and
// returns the resulting environment. A missing file only produces a warning.
func Load() map[string]string {
	possiblePaths := []string{
		".env",
		filepath.Join("..", ".env"),
	}

	var envLoaded bool
	for _, envPath := range possiblePaths {
		if err := godotenv.Load(envPath); err == nil {
			envLoaded = true
			log.Debug().Str("path", envPath).Msg("Loaded .env file")
			break
		}
	}

	if !envLoaded {
		log.Warn().Msg("No .env file found, using existing environment variables")
	}

	return New()
}
