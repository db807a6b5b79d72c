// Package config loads application configuration from environment variables
// into tagged structs.
//
// It composes github.com/joho/godotenv (optional .env files) with
// github.com/caarlos0/env/v11 (struct parsing). The default .env file is
// loaded lazily on first use; explicitly named files go through LoadEnv and
// must exist.
//
//	type ServerConfig struct {
//	    Addr    string        `env:"SERVER_ADDR" envDefault:":8080"`
//	    Timeout time.Duration `env:"SERVER_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg)
//
// Errors are reported through the package sentinels and can be inspected
// with errors.Is.
package config
