package matrix

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// RequestDescriptor fully describes one HTTP call.
type RequestDescriptor struct {
	Method string
	URL    string
	Header map[string]string
	Body   []byte

	// Query is merged into the URL's existing query string.
	Query map[string]string
}

// errorNormalizer turns a non-2xx status and body into an APIError.
type errorNormalizer func(status int, body []byte) *APIError

// Executor performs HTTP calls and maps their outcome to either the raw
// response body or an *APIError.
type Executor struct {
	httpClient *http.Client
	logger     hclog.Logger
}

// NewExecutor creates an Executor. A nil logger discards output.
func NewExecutor(httpClient *http.Client, logger hclog.Logger) *Executor {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Executor{
		httpClient: httpClient,
		logger:     logger.Named("executor"),
	}
}

// Execute sends the request. A 2xx response body is returned untouched.
// Transport failures yield KindTransport; other statuses go through
// NormalizeError.
func (e *Executor) Execute(ctx context.Context, desc *RequestDescriptor) ([]byte, error) {
	return e.execute(ctx, desc, NormalizeError)
}

func (e *Executor) execute(ctx context.Context, desc *RequestDescriptor, normalize errorNormalizer) ([]byte, error) {
	req, err := desc.newRequest(ctx)
	if err != nil {
		return nil, newConfigurationError(err)
	}

	requestID := uuid.NewString()
	logger := e.logger.With("request_id", requestID, "method", req.Method, "path", req.URL.Path)

	start := time.Now()
	resp, err := e.httpClient.Do(req)
	if err != nil {
		logger.Error("request failed", "error", err, "duration", time.Since(start))
		return nil, newTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("failed to read response", "status", resp.StatusCode, "error", err)
		return nil, newTransportError(fmt.Errorf("failed to read response: %w", err))
	}

	logger.Debug("request completed",
		"status", resp.StatusCode,
		"response_bytes", len(body),
		"duration", time.Since(start),
	)

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return body, nil
	}

	apiErr := normalize(resp.StatusCode, body)
	logger.Warn("matrix api returned an error",
		"status", resp.StatusCode,
		"kind", apiErr.Kind,
	)
	return nil, apiErr
}

func (d *RequestDescriptor) newRequest(ctx context.Context) (*http.Request, error) {
	if d == nil {
		return nil, fmt.Errorf("request descriptor is required")
	}

	u, err := url.Parse(d.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid request url: %w", err)
	}

	if len(d.Query) > 0 {
		q := u.Query()
		for k, v := range d.Query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	var body io.Reader
	if d.Body != nil {
		body = bytes.NewReader(d.Body)
	}

	method := d.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range d.Header {
		req.Header.Set(k, v)
	}

	return req, nil
}
