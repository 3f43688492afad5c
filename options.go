package azauth

import (
	"net/http"

	"github.com/goliatone/go-azauth/codec"
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithHTTPClient sets the transport. The client imposes no timeout of its own;
// set one on the http.Client if needed.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger overrides the default stdout logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRegistry sets the codec registry used for request and response bodies.
// The registry is frozen when the client is built.
func WithRegistry(registry *codec.Registry) Option {
	return func(c *Client) {
		if registry != nil {
			c.registry = registry
		}
	}
}
