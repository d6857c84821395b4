// Package auth implements GitHub OAuth login through the confidential
// exchange proxy. The proxy holds the OAuth client secret; this client only
// ever sees authorization codes and bearer tokens.
package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Auth flow errors.
var (
	// ErrAuthExchangeFailed is returned when the proxy rejects the code
	// or is unreachable.
	ErrAuthExchangeFailed = errors.New("token exchange failed — code invalid, expired, or proxy unreachable")
	// ErrLoginTimeout is returned when the browser flow is abandoned.
	ErrLoginTimeout = errors.New("login timed out waiting for the browser callback")
	// ErrNotLoggedIn is returned when an operation needs a user token and
	// the session is absent or expired.
	ErrNotLoggedIn = errors.New("not logged in — run 'catalogctl login'")
)

// ProxyClient talks to the OAuth exchange proxy.
type ProxyClient struct {
	baseURL string
	http    *http.Client
}

// NewProxyClient creates a ProxyClient for the given base URL.
func NewProxyClient(baseURL string) *ProxyClient {
	return &ProxyClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// ClientID fetches the OAuth application's public client identifier.
func (p *ProxyClient) ClientID() (string, error) {
	var out struct {
		ClientID string `json:"client_id"`
	}
	if err := p.getJSON("/client-id", &out); err != nil {
		return "", err
	}
	if out.ClientID == "" {
		return "", fmt.Errorf("proxy returned an empty client id")
	}
	return out.ClientID, nil
}

// ExchangeCode swaps an authorization code for a user access token.
func (p *ProxyClient) ExchangeCode(code string) (string, error) {
	body, err := json.Marshal(map[string]string{"code": code})
	if err != nil {
		return "", err
	}
	resp, err := p.http.Post(p.baseURL+"/exchange-token", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthExchangeFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: proxy status %d", ErrAuthExchangeFailed, resp.StatusCode)
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthExchangeFailed, err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("%w: proxy returned no token", ErrAuthExchangeFailed)
	}
	return out.AccessToken, nil
}

// ServiceToken fetches the read-only service token used for anonymous
// directory reads.
func (p *ProxyClient) ServiceToken() (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := p.getJSON("/github-token", &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (p *ProxyClient) getJSON(path string, out interface{}) error {
	resp, err := p.http.Get(p.baseURL + path)
	if err != nil {
		return fmt.Errorf("proxy request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("proxy %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
