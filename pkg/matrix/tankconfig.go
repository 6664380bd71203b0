package matrix

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const (
	talentNetworkPath = "/consumer/talentnetwork"
	tankConfigPath    = talentNetworkPath + "/tankconfig/%s"
)

// ===================================================================
// Tank configuration
// ===================================================================
// Every call acquires its own token, then hits /consumer/talentnetwork/*.
// Errors are *APIError values and are returned unchanged.

// Query retrieves the tank configuration of a talent network.
func (c *Client) Query(ctx context.Context, tnDID string) ([]byte, error) {
	path := fmt.Sprintf(tankConfigPath, url.PathEscape(tnDID))

	return c.doAuthorized(ctx, http.MethodGet, path, nil)
}

// Update replaces the tank configuration of a talent network. data is sent
// as the request body without modification.
func (c *Client) Update(ctx context.Context, tnDID string, data []byte) ([]byte, error) {
	path := fmt.Sprintf(tankConfigPath, url.PathEscape(tnDID))

	if data == nil {
		data = []byte{}
	}

	return c.doAuthorized(ctx, http.MethodPut, path, data)
}

// Create creates a talent network tank configuration from data, which is
// serialized as JSON.
func (c *Client) Create(ctx context.Context, data any) ([]byte, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tank config: %w", err)
	}

	return c.doAuthorized(ctx, http.MethodPost, talentNetworkPath, body)
}
