package apisvc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/darasa/console/core/session"
)

// ErrSessionExpired is returned when the platform API rejects the session's
// token. By the time the caller sees it the session has already been logged
// out; the only thing left to do is send the user to the login screen.
var ErrSessionExpired = errors.New("session expired; please log in again")

// Client is the authenticated HTTP client every screen uses to reach the
// platform API. It injects the session token and enforces the forced-logout
// contract: a 401 from the API clears the session, once, in one place,
// instead of being re-implemented per screen.
type Client struct {
	baseURL  string
	client   *http.Client
	provider *session.Provider
}

func NewClient(baseURL string, timeout time.Duration, provider *session.Provider) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		provider: provider,
	}
}

// Get fetches a resource and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post sends a JSON payload and decodes the response into out (out may be nil).
func (c *Client) Post(ctx context.Context, path string, payload, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, payload, out)
}

// Put sends a JSON payload and decodes the response into out (out may be nil).
func (c *Client) Put(ctx context.Context, path string, payload, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, payload, out)
}

// Delete removes a resource.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	token := c.provider.Token()
	if token == "" {
		return ErrSessionExpired
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return pkgerrors.Wrap(err, "encoding request")
		}
		body = strings.NewReader(string(data))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return pkgerrors.Wrap(err, "building request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return pkgerrors.Wrap(err, "calling platform api")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusUnauthorized {
		// stale or revoked token: forced logout, then back to the login screen
		c.provider.Logout()
		return ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return pkgerrors.Errorf("platform api returned %s", resp.Status)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return pkgerrors.Wrap(err, "decoding response")
		}
	}
	return nil
}
