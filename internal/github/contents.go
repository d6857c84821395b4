package github

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DirEntry is one entry of a Contents API directory listing.
type DirEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	SHA  string `json:"sha"`
	Type string `json:"type"` // "file" or "dir"
}

// FileContent is the Contents API response for a single file.
type FileContent struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int    `json:"size"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
	HTMLURL  string `json:"html_url"`
}

// ListDirectory lists the entries of a directory at the given ref.
// Returns ErrNotFound if the path does not exist at that ref.
func (c *Client) ListDirectory(owner, repo, path, ref string) ([]DirEntry, error) {
	u := c.url("repos", owner, repo, "contents", path)
	if ref != "" {
		u += "?ref=" + url.QueryEscape(ref)
	}
	var entries []DirEntry
	if err := c.doJSON(http.MethodGet, u, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetFileContent fetches a file via the Contents API.
// Returns (content, blobSHA, error). The blob sha is needed for updates
// and deletes.
func (c *Client) GetFileContent(owner, repo, path, ref string) ([]byte, string, error) {
	u := c.url("repos", owner, repo, "contents", path)
	if ref != "" {
		u += "?ref=" + url.QueryEscape(ref)
	}

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return nil, "", err
	}

	var fc FileContent
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, "", err
	}

	// Decode base64 (GitHub wraps lines at 60 chars with newlines).
	cleaned := strings.ReplaceAll(fc.Content, "\n", "")
	data, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, "", fmt.Errorf("decoding contents: %w", err)
	}
	return data, fc.SHA, nil
}

// PutFile creates or updates a file on the given branch. For updates the
// priorSHA observed at last read must be supplied; a stale or missing sha
// is rejected by GitHub and surfaces as ErrConflict.
func (c *Client) PutFile(owner, repo, path string, content []byte, message, branch, priorSHA string) error {
	u := c.url("repos", owner, repo, "contents", path)
	body := map[string]interface{}{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
	}
	if branch != "" {
		body["branch"] = branch
	}
	if priorSHA != "" {
		body["sha"] = priorSHA
	}
	if err := c.doJSON(http.MethodPut, u, body, nil); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// DeleteFile removes a file on the given branch. priorSHA must match the
// file's current blob sha or the delete fails.
func (c *Client) DeleteFile(owner, repo, path, priorSHA, message, branch string) error {
	u := c.url("repos", owner, repo, "contents", path)
	body := map[string]interface{}{
		"message": message,
		"sha":     priorSHA,
	}
	if branch != "" {
		body["branch"] = branch
	}
	if err := c.doJSON(http.MethodDelete, u, body, nil); err != nil {
		return fmt.Errorf("deleting %s: %w", path, err)
	}
	return nil
}
