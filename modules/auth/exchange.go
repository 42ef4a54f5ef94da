package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// BrokeredIdentity is the output shape of the external identity exchange.
type BrokeredIdentity struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

// IdentityExchanger trades a broker-issued session id for the identity and
// session token the broker verified.
type IdentityExchanger interface {
	Exchange(ctx context.Context, sessionID string) (*BrokeredIdentity, error)
}

// HTTPExchanger calls the identity broker over HTTP with a bounded timeout.
type HTTPExchanger struct {
	endpoint string
	client   *http.Client
}

// NewHTTPExchanger creates an exchanger against the given broker endpoint.
func NewHTTPExchanger(endpoint string, timeout time.Duration) *HTTPExchanger {
	return &HTTPExchanger{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Exchange performs the broker call. Any transport or decoding failure is
// wrapped in ErrExchangeFailed; callers treat it as an invalid sign-in
// attempt, never as a server fault.
func (e *HTTPExchanger) Exchange(ctx context.Context, sessionID string) (*BrokeredIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.endpoint, nil)
	if err != nil {
		return nil, errors.Join(ErrExchangeFailed, err)
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrExchangeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: broker returned status %d", ErrExchangeFailed, resp.StatusCode)
	}

	var identity BrokeredIdentity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, errors.Join(ErrExchangeFailed, err)
	}

	if identity.Email == "" || identity.SessionToken == "" {
		return nil, fmt.Errorf("%w: incomplete identity payload", ErrExchangeFailed)
	}

	return &identity, nil
}
