package matrix

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	tokenPath = "/oauth/token"

	// ClientAssertionType is the RFC 7523 client assertion type.
	ClientAssertionType = "urn:ietf:params:oauth:client-assertion-type:jwt-bearer"
)

// TokenAcquirer returns a bearer token for the resource endpoints.
//
// The client asks for a token once per operation. Implementations that cache
// or refresh tokens can be plugged in with WithTokenAcquirer.
type TokenAcquirer interface {
	AcquireToken(ctx context.Context) (string, error)
}

// AssertionTokenAcquirer exchanges a signed client assertion for an access
// token on every call. It keeps no state between calls.
type AssertionTokenAcquirer struct {
	credentials Credentials
	tokenURL    string
	httpClient  *http.Client
	logger      hclog.Logger
	now         func() time.Time
}

var _ TokenAcquirer = (*AssertionTokenAcquirer)(nil)

// NewAssertionTokenAcquirer creates a token acquirer from cfg.
func NewAssertionTokenAcquirer(cfg *Config) *AssertionTokenAcquirer {
	return newAssertionTokenAcquirer(cfg, cfg.httpClient())
}

func newAssertionTokenAcquirer(cfg *Config, httpClient *http.Client) *AssertionTokenAcquirer {
	return &AssertionTokenAcquirer{
		credentials: cfg.Credentials(),
		tokenURL:    cfg.ResolvedTokenURL(),
		httpClient:  httpClient,
		logger:      cfg.logger().Named("token"),
		now:         time.Now,
	}
}

// AcquireToken validates the credentials, signs a fresh client assertion
// and posts it to the token endpoint.
func (a *AssertionTokenAcquirer) AcquireToken(ctx context.Context) (string, error) {
	if err := a.credentials.Validate(); err != nil {
		return "", newConfigurationError(fmt.Errorf("invalid client credentials: %w", err))
	}

	assertion, err := SignAssertion(BuildClaims(a.credentials.ClientID, a.now()), a.credentials.Secret)
	if err != nil {
		return "", newConfigurationError(err)
	}

	conf := &clientcredentials.Config{
		ClientID:     a.credentials.ClientID,
		ClientSecret: a.credentials.Secret,
		TokenURL:     a.tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
		EndpointParams: url.Values{
			"client_assertion_type": {ClientAssertionType},
			"client_assertion":      {assertion},
		},
	}

	a.logger.Debug("requesting access token",
		"token_url", a.tokenURL,
		"client_id", a.credentials.ClientID,
	)

	transport := newExchangeTransport(a.httpClient.Transport)
	httpClient := *a.httpClient
	httpClient.Transport = transport

	token, err := conf.Token(context.WithValue(ctx, oauth2.HTTPClient, &httpClient))
	if err != nil {
		apiErr := classifyTokenError(err, transport.failure())
		a.logger.Error("failed to acquire access token",
			"kind", apiErr.Kind,
			"status", apiErr.StatusCode,
			"error", apiErr.Detail,
		)
		return "", apiErr
	}

	a.logger.Debug("acquired access token", "token_type", token.TokenType)
	return token.AccessToken, nil
}

// classifyTokenError maps a failed exchange to an APIError. OAuth error
// bodies become KindServerReported carrying error_description. Failures of
// the connection itself, including while the response body was read, are
// KindTransport; transportErr is the failure recorded by exchangeTransport.
func classifyTokenError(err, transportErr error) *APIError {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		detail := retrieveErr.ErrorDescription
		if detail == "" {
			detail = retrieveErr.ErrorCode
		}
		if detail == "" {
			detail = string(retrieveErr.Body)
		}

		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}

		return &APIError{
			Kind:       KindServerReported,
			StatusCode: status,
			Message:    detail,
			Detail:     detail,
			Err:        err,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return newTransportError(err)
	}

	// x/oauth2 formats body read failures with %v, so the cause is only
	// known from the transport.
	if transportErr != nil {
		return &APIError{
			Kind:    KindTransport,
			Message: err.Error(),
			Detail:  err.Error(),
			Err:     transportErr,
		}
	}

	// A 2xx reply that could not be read as a token, e.g. one missing
	// access_token.
	return &APIError{
		Kind:    KindServerReported,
		Message: err.Error(),
		Detail:  err.Error(),
		Err:     err,
	}
}

// exchangeTransport wraps the transport of one token exchange and records
// the first error below HTTP, from the round trip or from reading the body.
type exchangeTransport struct {
	base http.RoundTripper

	mu  sync.Mutex
	err error
}

func newExchangeTransport(base http.RoundTripper) *exchangeTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &exchangeTransport{base: base}
}

func (t *exchangeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.record(err)
		return nil, err
	}

	resp.Body = &exchangeBody{ReadCloser: resp.Body, transport: t}
	return resp, nil
}

func (t *exchangeTransport) record(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err == nil {
		t.err = err
	}
}

func (t *exchangeTransport) failure() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

type exchangeBody struct {
	io.ReadCloser
	transport *exchangeTransport
}

func (b *exchangeBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	if err != nil && err != io.EOF {
		b.transport.record(err)
	}
	return n, err
}
