package matrix

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// developerKeyParam is the query parameter carrying Config.DeveloperKey.
const developerKeyParam = "DeveloperKey"

// NetworkSearch describes a talent network lookup.
type NetworkSearch struct {
	// Keyword is an account DID, talent network DID, talent network name or
	// site URL.
	Keyword string `json:"kw"`

	// Query holds extra query string parameters.
	Query map[string]string `json:"qs"`
}

// Validate checks that a keyword is present.
func (s NetworkSearch) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Keyword, validation.Required),
	)
}

// QueryNetworks searches talent networks. It authenticates with the
// developer key instead of a bearer token, and reports failures with the
// response body as is: every non-2xx status is KindClientReported.
func (c *Client) QueryNetworks(ctx context.Context, search NetworkSearch) ([]byte, error) {
	if c.config.DeveloperKey == "" {
		return nil, newConfigurationError(fmt.Errorf("developer key is required for talent network search"))
	}
	if err := search.Validate(); err != nil {
		return nil, newConfigurationError(fmt.Errorf("invalid talent network search: %w", err))
	}

	query := make(map[string]string, len(search.Query)+1)
	for k, v := range search.Query {
		query[k] = v
	}
	query[developerKeyParam] = c.config.DeveloperKey

	return c.executor.execute(ctx, &RequestDescriptor{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/talentnetworks/%s/json", c.baseURL, url.PathEscape(search.Keyword)),
		Header: map[string]string{
			"Accept": "application/json",
		},
		Query: query,
	}, rawBodyError)
}

// rawBodyError reports the body verbatim (compacted when it is JSON).
func rawBodyError(status int, body []byte) *APIError {
	detail := string(body)
	if json.Valid(body) {
		detail = compactJSON(body)
	}

	return &APIError{
		Kind:       KindClientReported,
		StatusCode: status,
		Message:    detail,
		Detail:     detail,
	}
}
