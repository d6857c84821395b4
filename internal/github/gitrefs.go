package github

import (
	"fmt"
	"net/http"
)

type ref struct {
	Ref    string `json:"ref"`
	Object struct {
		SHA string `json:"sha"`
	} `json:"object"`
}

// PullRequest is the subset of the pulls API response we care about.
type PullRequest struct {
	Number  int    `json:"number"`
	HTMLURL string `json:"html_url"`
}

// CreateBranch creates a new branch pointing at the head of fromRef.
func (c *Client) CreateBranch(owner, repo, name, fromRef string) error {
	var r ref
	u := c.url("repos", owner, repo, "git", "ref", "heads/"+fromRef)
	if err := c.doJSON(http.MethodGet, u, nil, &r); err != nil {
		return fmt.Errorf("resolving %s: %w", fromRef, err)
	}

	u = c.url("repos", owner, repo, "git", "refs")
	body := map[string]interface{}{
		"ref": "refs/heads/" + name,
		"sha": r.Object.SHA,
	}
	if err := c.doJSON(http.MethodPost, u, body, nil); err != nil {
		return fmt.Errorf("creating branch %q: %w", name, err)
	}
	return nil
}

// OpenPullRequest opens a pull request from head into base and returns it.
func (c *Client) OpenPullRequest(owner, repo, title, body, head, base string) (*PullRequest, error) {
	u := c.url("repos", owner, repo, "pulls")
	payload := map[string]interface{}{
		"title": title,
		"body":  body,
		"head":  head,
		"base":  base,
	}
	var pr PullRequest
	if err := c.doJSON(http.MethodPost, u, payload, &pr); err != nil {
		return nil, fmt.Errorf("opening pull request: %w", err)
	}
	return &pr, nil
}
