// Package config loads application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11 and runs
// `validate:"..."` tags through pkg/validator after parsing:
//
//	type Config struct {
//		Addr    string        `env:"HTTP_ADDR" envDefault:":8080" validate:"required"`
//		Timeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s" validate:"gt=0"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Load caches one parsed copy per type for the lifetime of the process and reads
// an optional .env file on first use. Parse skips both and accepts options such as
// WithEnvironment, which makes it the entry point for tests.
package config
