package gatewaysvc

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/darasa/console/core/identity"
)

const (
	loginEndpoint    = "/auth/login"
	registerEndpoint = "/auth/register"

	defaultTimeout = 15 * time.Second
)

// envelope is the platform API's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type httpService struct {
	baseURL string
	client  *http.Client
}

var _ identity.Gateway = (*httpService)(nil)

// NewHTTPService returns a Gateway backed by the remote platform API.
func NewHTTPService(baseURL string, timeout time.Duration) identity.Gateway {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &httpService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (svc *httpService) Authenticate(ctx context.Context, creds identity.Credentials) (identity.Auth, error) {
	var auth identity.Auth
	if err := svc.post(ctx, loginEndpoint, creds, &auth); err != nil {
		return identity.Auth{}, err
	}
	if auth.Token == "" {
		return identity.Auth{}, &identity.TransportError{Err: errors.New("gateway returned empty token")}
	}
	return auth, nil
}

func (svc *httpService) Register(ctx context.Context, reg identity.Registration) (identity.Identity, error) {
	var ident identity.Identity
	if err := svc.post(ctx, registerEndpoint, reg, &ident); err != nil {
		return identity.Identity{}, err
	}
	return ident, nil
}

// post sends the payload and decodes the envelope's data field into out.
// A 4xx with success=false is a credential rejection carrying the server's
// message; everything else that deviates is a transport error.
func (svc *httpService) post(ctx context.Context, endpoint string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &identity.TransportError{Err: errors.Wrap(err, "encoding request")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return &identity.TransportError{Err: errors.Wrap(err, "building request")}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := svc.client.Do(req)
	if err != nil {
		return &identity.TransportError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &identity.TransportError{Err: errors.Wrap(err, "decoding response")}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300 && env.Success:
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &identity.TransportError{Err: errors.Wrap(err, "decoding response data")}
		}
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusForbidden:
		reason := env.Message
		if reason == "" {
			reason = "authentication failed"
		}
		return &identity.AuthError{Reason: reason}
	default:
		return &identity.TransportError{Err: errors.Errorf("gateway returned %s", resp.Status)}
	}
}
