package jinakit

import (
	"log/slog"
	"net/http"
	"time"
)

// WithAPIKey sets an explicit API key, taking precedence over JINA_API_KEY.
func WithAPIKey(apiKey string) ClientOption {
	return func(c *Config) { c.APIKey = apiKey }
}

// WithModel sets the embedding model for all requests from this client.
func WithModel(model string) ClientOption {
	return func(c *Config) { c.Model = model }
}

// WithBaseURL overrides the API root, e.g. to point at a proxy or a fake
// service in tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Config) { c.BaseURL = baseURL }
}

// WithRetries sets the total number of attempts per request, the first
// one included.
func WithRetries(retries uint) ClientOption {
	return func(c *Config) { c.Retries = retries }
}

// WithBackoff sets the base delay between attempts. The delay grows
// exponentially from there.
func WithBackoff(d time.Duration) ClientOption {
	return func(c *Config) { c.Backoff = d }
}

// WithLogLevel sets the minimum log level for the client's internal logging.
func WithLogLevel(level slog.Level) ClientOption {
	return func(c *Config) { c.LogLevel = level }
}

// WithKeyResolver replaces the default environment-based key resolution.
func WithKeyResolver(resolver KeyResolver) ClientOption {
	return func(c *Config) { c.Resolver = resolver }
}

// WithHTTPClient supplies the underlying *http.Client, e.g. to control
// transport timeouts. A transport timeout surfaces as a transient error
// and is retried like any other connection failure.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Config) { c.HTTPClient = hc }
}
