package matrix

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// Client exposes the matrix resource operations. It holds no mutable state
// and is safe for concurrent use.
type Client struct {
	config   Config
	baseURL  string
	tokens   TokenAcquirer
	executor *Executor
	logger   hclog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithTokenAcquirer replaces the default AssertionTokenAcquirer.
func WithTokenAcquirer(tokens TokenAcquirer) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// NewClient creates a matrix client. cfg is copied and not retained.
func NewClient(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("matrix client config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid matrix client config: %w", err)
	}

	httpClient := cfg.httpClient()
	logger := cfg.logger().Named("matrix")

	c := &Client{
		config:   *cfg,
		baseURL:  cfg.ResolvedBaseURL(),
		executor: NewExecutor(httpClient, logger),
		logger:   logger,
	}
	c.config.HTTPClient = httpClient

	for _, opt := range opts {
		opt(c)
	}

	if c.tokens == nil {
		c.tokens = newAssertionTokenAcquirer(&c.config, httpClient)
	}

	return c, nil
}

// BaseURL returns the API host the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AcquireToken fetches a fresh access token.
func (c *Client) AcquireToken(ctx context.Context) (string, error) {
	return c.tokens.AcquireToken(ctx)
}

// doAuthorized acquires a token and sends one bearer-authenticated request.
func (c *Client) doAuthorized(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	token, err := c.tokens.AcquireToken(ctx)
	if err != nil {
		return nil, err
	}

	return c.executor.Execute(ctx, &RequestDescriptor{
		Method: method,
		URL:    c.baseURL + path,
		Header: map[string]string{
			"Authorization": "Bearer " + token,
			"Content-Type":  "application/json",
		},
		Body: body,
	})
}
