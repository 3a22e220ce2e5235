package jinakit

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultBaseURL is the Jina embeddings API root.
	DefaultBaseURL = "https://api.jina.ai/v1"

	// DefaultModel is used when no model is configured. Check the list of
	// available models on https://jina.ai/embeddings/.
	DefaultModel = "jina-embeddings-v2-base-en"

	// KeyName is the environment variable consulted when no explicit API
	// key is configured.
	KeyName = "JINA_API_KEY"
)

// KeyResolver resolves the API key from an explicit value or an
// environment-style lookup under keyName. Injectable so tests never have
// to touch the real process environment.
type KeyResolver func(explicit, keyName string) (string, error)

// ResolveKeyFromEnv is the default KeyResolver: an explicit non-empty key
// wins, otherwise the environment variable is consulted, otherwise
// ErrMissingAPIKey.
func ResolveKeyFromEnv(explicit, keyName string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if key := os.Getenv(keyName); key != "" {
		return key, nil
	}
	return "", ErrMissingAPIKey
}

// Client talks to the Jina embeddings API. It holds only immutable
// configuration, so a single Client is safe for concurrent use.
type Client struct {
	http   *resty.Client
	config Config
	logger *slog.Logger
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Config)

type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Retries    uint
	Backoff    time.Duration
	LogLevel   slog.Level
	Resolver   KeyResolver
	HTTPClient *http.Client
}

// NewClient creates a new jinakit Client with the given options. The API
// key is resolved once, here: construction fails with ErrMissingAPIKey
// before any network call can happen.
func NewClient(opts ...ClientOption) (*Client, error) {
	c := Config{
		BaseURL:  DefaultBaseURL,
		Model:    DefaultModel,
		Retries:  3,
		Backoff:  500 * time.Millisecond,
		LogLevel: slog.LevelInfo,
		Resolver: ResolveKeyFromEnv,
	}

	for _, opt := range opts {
		opt(&c)
	}

	key, err := c.Resolver(c.APIKey, KeyName)
	if err != nil {
		return nil, err
	}
	c.APIKey = key

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: c.LogLevel,
	}))

	var httpc *resty.Client
	if c.HTTPClient != nil {
		httpc = resty.NewWithClient(c.HTTPClient)
	} else {
		httpc = resty.New()
	}

	httpc.
		SetBaseURL(c.BaseURL).
		SetAuthToken(c.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept-Encoding", "identity").
		SetRetryCount(0) // retry-go owns the retry policy

	return &Client{
		http:   httpc,
		config: c,
		logger: logger,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.config.Model }
