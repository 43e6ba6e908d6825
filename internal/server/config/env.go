package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable the server reads,
// e.g. TRIVIA_DATABASE_DSN.
const EnvPrefix = "TRIVIA_"

// parseEnv overlays environment variables onto config. Unset variables keep
// the current value. A nil environment means the process environment.
func parseEnv(config *Config, environment map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environment != nil {
		opts.Environment = environment
	}

	if err := env.ParseWithOptions(config, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
