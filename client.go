package azauth

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-azauth/codec"
	"github.com/goliatone/go-print"
)

const (
	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "AzAuth authenticator v1"

	contentType     = "application/json; charset=utf-8"
	apiPath         = "/api/auth/"
	maxErrorExcerpt = 512
)

// Client talks to the /api/auth endpoints of a website. It holds no mutable
// state after construction and is safe for concurrent use.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     Logger
	registry   *codec.Registry
}

// NewClient returns a client for the website at baseURL. An empty or
// malformed URL fails with ErrInvalidConfig. A plain http:// URL is accepted
// with a warning.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	return NewClientFromConfig(ClientConfig{BaseURL: baseURL}, opts...)
}

// NewClientFromConfig is NewClient driven by a Config.
func NewClientFromConfig(cfg Config, opts ...Option) (*Client, error) {
	conf := configFrom(cfg)

	c := &Client{
		baseURL:    strings.TrimRight(conf.BaseURL, "/"),
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{},
		logger:     defLogger{},
	}
	if conf.UserAgent != "" {
		c.userAgent = conf.UserAgent
	}
	for _, opt := range opts {
		opt(c)
	}

	if verr := conf.Validate(); verr != nil {
		return nil, wrapError(ErrInvalidConfig, verr, map[string]any{
			"base_url": conf.BaseURL,
		})
	}

	if c.registry == nil {
		c.registry = codec.DefaultRegistry()
	}
	c.registry.Freeze()

	if isPlainHTTP(c.baseURL) {
		c.logger.Warn("base url %s uses HTTP, this is not secure, please consider upgrading to HTTPS", c.baseURL)
	}

	return c, nil
}

// URL returns the website base URL.
func (c *Client) URL() string {
	return c.baseURL
}

// Authenticate exchanges an email and password for the player profile.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*PlayerProfile, error) {
	return AuthenticateAs[*PlayerProfile](ctx, c, email, password)
}

// Verify exchanges an access token for the current player profile.
func (c *Client) Verify(ctx context.Context, accessToken string) (*PlayerProfile, error) {
	return VerifyAs[*PlayerProfile](ctx, c, accessToken)
}

// Logout invalidates accessToken. The response body is not read.
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	resp, err := c.exchange(ctx, endpointLogout, accessToken)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	return nil
}

// AuthenticateAs is Authenticate decoding the profile into T.
func AuthenticateAs[T any](ctx context.Context, c *Client, email, password string) (T, error) {
	return post[T](ctx, c, endpointAuthenticate, email, password)
}

// VerifyAs is Verify decoding the profile into T.
func VerifyAs[T any](ctx context.Context, c *Client, accessToken string) (T, error) {
	return post[T](ctx, c, endpointVerify, accessToken)
}

func post[T any](ctx context.Context, c *Client, ep endpoint, fields ...string) (T, error) {
	var zero T

	resp, err := c.exchange(ctx, ep, fields...)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, wrapError(ErrRequestFailed, err, responseMeta(ep, resp.StatusCode))
	}

	out, err := codec.Decode[T](c.registry, data)
	if err != nil {
		c.logger.Debug("%s response did not decode: %v", ep, err)
		return zero, wrapError(ErrInvalidResponse, err, responseMeta(ep, resp.StatusCode))
	}

	return out, nil
}

// exchange sends the request and sorts out the status code. On success the
// caller owns resp.Body; on error it has already been closed.
func (c *Client) exchange(ctx context.Context, ep endpoint, fields ...string) (*http.Response, error) {
	body, err := encodeRequest(c.registry, ep, fields...)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiPath+string(ep), bytes.NewReader(body))
	if err != nil {
		return nil, wrapError(ErrRequestFailed, err, map[string]any{"endpoint": string(ep)})
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrapError(ErrRequestFailed, err, map[string]any{"endpoint": string(ep)})
	}
	c.logger.Debug("POST %s -> %d (%s)", req.URL.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity:
		defer resp.Body.Close()
		return nil, c.authenticationError(ep, resp)

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		defer resp.Body.Close()
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorExcerpt))
		meta := responseMeta(ep, resp.StatusCode)
		if len(excerpt) > 0 {
			meta["body"] = string(excerpt)
		}
		return nil, wrapError(ErrUnexpectedStatus, nil, meta)
	}

	return resp, nil
}

func (c *Client) authenticationError(ep endpoint, resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return wrapError(ErrRequestFailed, err, responseMeta(ep, resp.StatusCode))
	}

	body, err := codec.Decode[authErrorBody](c.registry, data)
	if err != nil {
		return wrapError(ErrInvalidResponse, err, responseMeta(ep, resp.StatusCode))
	}

	authErr := &AuthenticationError{
		Message:    body.Message,
		Reason:     body.Reason,
		Status:     body.Status,
		StatusCode: resp.StatusCode,
		Endpoint:   string(ep),
	}
	c.logger.Debug("%s rejected: %s", ep, print.MaybePrettyJSON(authErr.Metadata()))

	return authErr
}

func responseMeta(ep endpoint, status int) map[string]any {
	return map[string]any{
		"endpoint": string(ep),
		"status":   status,
	}
}
