package compose

import "time"

// Config holds conversation engine configuration.
type Config struct {
	// IdleTimeout is how long a session may sit without input before it is
	// treated as abandoned and cancelled.
	IdleTimeout time.Duration `env:"COMPOSE_IDLE_TIMEOUT" envDefault:"10m"`

	// CleanupInterval controls the background sweep of abandoned sessions
	// (0 disables the sweeper; idle sessions are still expired lazily on
	// their next touch).
	CleanupInterval time.Duration `env:"COMPOSE_CLEANUP_INTERVAL" envDefault:"1m"`
}

// DefaultConfig returns default conversation engine configuration.
func DefaultConfig() Config {
	return Config{
		IdleTimeout:     10 * time.Minute,
		CleanupInterval: time.Minute,
	}
}
