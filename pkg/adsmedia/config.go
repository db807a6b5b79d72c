package adsmedia

import "time"

// DefaultBaseURL is the production ADSMedia API endpoint.
const DefaultBaseURL = "https://api.adsmedia.live/v1"

// DefaultTimeout is the fixed per-request timeout. The client issues exactly
// one attempt per call; a request that exceeds this resolves to ErrTransport.
const DefaultTimeout = 30 * time.Second

// Config holds ADSMedia API client configuration.
// APIKey is required; the remaining fields fall back to package defaults.
type Config struct {
	// APIKey is the bearer credential sent with every request.
	APIKey string `env:"ADSMEDIA_API_KEY,required"`

	// BaseURL is the API endpoint, overridable for testing or self-hosted
	// deployments.
	BaseURL string `env:"ADSMEDIA_BASE_URL" envDefault:"https://api.adsmedia.live/v1"`

	// Timeout is the per-request timeout applied to every call.
	Timeout time.Duration `env:"ADSMEDIA_TIMEOUT" envDefault:"30s"`

	// FromName is the default sender display name, applied to outgoing
	// messages that don't set their own.
	FromName string `env:"ADSMEDIA_FROM_NAME"`
}
