package upstream

import (
	"context"
	"encoding/json"
	"net/http"
)

// CheckToken validates a bot token by performing the upstream getMe identity
// check. It returns nil for a valid token, an *APIError carrying the
// upstream's status and description for a rejected one, and a plain error for
// transport failures. This is the sole gate between a caller-supplied token
// string and an authorized request, so it runs once per inbound request
// before any cache or upstream side effects.
func (c *Client) CheckToken(ctx context.Context, token string) error {
	resp, err := c.Call(ctx, token, "getMe", http.MethodGet, nil, nil, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	description := "Unknown error."
	var body struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(resp.Body, &body); err == nil && body.Description != "" {
		description = body.Description
	}

	return &APIError{
		Code:        resp.StatusCode,
		Description: "Telegram Bot Api server returned an error: " + description,
	}
}
