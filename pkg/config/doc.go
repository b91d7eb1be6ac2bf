// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment
//     (the default .env in the working directory when none are given).
//   - Load parses the environment into any struct annotated with `env` tags
//     and caches the result per type, so each configuration type is parsed
//     once for the lifetime of the process.
//   - MustLoad panics on failure, for configuration a binary cannot start
//     without.
//   - ResetCache drops cached values, which is handy in tests.
//
// # Usage
//
//	type Config struct {
//		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
package config
