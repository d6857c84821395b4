package github

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultAPIBase = "https://api.github.com"

// Client is a GitHub API client. The token may be empty, in which case
// only anonymous reads are possible and writes fail with ErrAuthRequired.
type Client struct {
	token   string
	apiBase string
	http    *http.Client
}

// New creates a Client with the given token and API base URL.
// If apiBase is empty, the public GitHub API is used.
func New(token, apiBase string) *Client {
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	// Strip trailing slash for consistent URL building.
	apiBase = strings.TrimRight(apiBase, "/")

	return &Client{
		token:   token,
		apiBase: apiBase,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// do executes the request with standard GitHub headers.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if req.Header.Get("Content-Type") == "" && req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request: %w", err)
	}
	return resp, nil
}

// doJSON sends a request and decodes the JSON response into out.
// Non-GET requests require a token.
func (c *Client) doJSON(method, url string, body, out interface{}) error {
	if method != http.MethodGet && c.token == "" {
		return ErrAuthRequired
	}
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if err := checkStatus(resp); err != nil {
		return err
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// url builds an API URL from path segments.
func (c *Client) url(parts ...string) string {
	return c.apiBase + "/" + strings.Join(parts, "/")
}

// checkStatus returns a typed error for non-2xx responses.
func checkStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		return nil
	case http.StatusUnauthorized:
		return ErrAuthRequired
	case http.StatusForbidden:
		// GitHub signals a spent quota as 403 with a zeroed remaining header.
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return ErrRateLimited
		}
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnprocessableEntity:
		// The Contents API rejects a stale or missing blob sha with 422.
		body, _ := io.ReadAll(resp.Body)
		if strings.Contains(string(body), "sha") {
			return ErrConflict
		}
		return fmt.Errorf("github API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("github API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}
