package matrix

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// DefaultTimeout bounds every HTTP call when Config.Timeout is unset.
const DefaultTimeout = 30 * time.Second

// Config contains everything the matrix client needs. It is built once at
// process start and treated as read-only afterwards.
type Config struct {
	// ClientID is the OAuth2 client identifier (CBOAUTH2_CLIENT_ID).
	ClientID string

	// Secret is the shared client secret used both to sign the client
	// assertion and as client_secret in the token request (CBOAUTH2_SECRET).
	Secret string

	// DeveloperKey authenticates talent network searches (DEV_KEY).
	DeveloperKey string

	// Environment is the deployment environment name. Only "production"
	// selects the production API host.
	Environment string

	// BaseURL overrides the host resolved from Environment. Mostly useful
	// for proxies and tests.
	BaseURL string

	// Timeout for each HTTP call. Default: 30 seconds.
	Timeout time.Duration

	// HTTPClient replaces the client built from Timeout.
	HTTPClient *http.Client

	// Logger (optional).
	Logger hclog.Logger
}

// Credentials identify this client to the token endpoint.
type Credentials struct {
	ClientID string `json:"client_id"`
	Secret   string `json:"secret"`
}

// Validate checks that both values are present.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ClientID, validation.Required),
		validation.Field(&c.Secret, validation.Required),
	)
}

// Credentials returns the OAuth2 client credentials from the config.
func (c *Config) Credentials() Credentials {
	return Credentials{
		ClientID: c.ClientID,
		Secret:   c.Secret,
	}
}

// Validate checks the transport settings. Credentials are checked on every
// token acquisition instead, so a client without them can still search
// talent networks.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.BaseURL != "" {
		parsedURL, err := url.Parse(c.BaseURL)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid base_url: %w", err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			result = multierror.Append(result,
				fmt.Errorf("base_url must use http or https scheme, got: %q", parsedURL.Scheme))
		}
	}

	if c.Timeout < 0 {
		result = multierror.Append(result, fmt.Errorf("timeout must not be negative, got: %v", c.Timeout))
	}

	return result.ErrorOrNil()
}

// ResolvedBaseURL returns BaseURL when set, otherwise the com host for the
// configured environment.
func (c *Config) ResolvedBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	return ResolveBaseURL(RegionCOM, c.Environment)
}

// ResolvedTokenURL returns the token endpoint the client authenticates
// against.
func (c *Config) ResolvedTokenURL() string {
	if c.BaseURL != "" {
		return c.ResolvedBaseURL() + tokenPath
	}
	return TokenURL(RegionCOM, c.Environment)
}

// NewHTTPClient creates the HTTP client used when HTTPClient is nil.
// Redirects are never followed: a 3xx answer is handed back as is so it can
// be reported as an error.
func (c *Config) NewHTTPClient() *http.Client {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &http.Client{
		Timeout:       timeout,
		CheckRedirect: noRedirect,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

func (c *Config) logger() hclog.Logger {
	if c.Logger == nil {
		return hclog.NewNullLogger()
	}
	return c.Logger
}

func (c *Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return c.NewHTTPClient()
}
