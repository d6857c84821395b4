package github

import (
	"fmt"
	"net/http"
)

// Repo represents a GitHub repository.
type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stargazers_count"`
	HTMLURL     string `json:"html_url"`
	Private     bool   `json:"private"`
	License     *struct {
		SPDXID string `json:"spdx_id"`
		Name   string `json:"name"`
	} `json:"license"`
}

// Contributor is one entry of the repo contributors listing.
type Contributor struct {
	Login         string `json:"login"`
	AvatarURL     string `json:"avatar_url"`
	Contributions int    `json:"contributions"`
}

// User is the authenticated user, resolved from the token.
type User struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// GetRepo fetches repository metadata. Returns ErrNotFound if absent.
func (c *Client) GetRepo(owner, repo string) (*Repo, error) {
	url := c.url("repos", owner, repo)
	var r Repo
	if err := c.doJSON(http.MethodGet, url, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// RepoExists returns true if the repo exists and is accessible.
func (c *Client) RepoExists(owner, repo string) (bool, error) {
	_, err := c.GetRepo(owner, repo)
	if err == ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

// ListContributors returns the contributors of a repository.
func (c *Client) ListContributors(owner, repo string) ([]Contributor, error) {
	url := c.url("repos", owner, repo, "contributors") + "?per_page=100"
	var contributors []Contributor
	if err := c.doJSON(http.MethodGet, url, nil, &contributors); err != nil {
		return nil, err
	}
	return contributors, nil
}

// HasReadme reports whether the repository has a README at its default branch.
func (c *Client) HasReadme(owner, repo string) (bool, error) {
	url := c.url("repos", owner, repo, "readme")
	err := c.doJSON(http.MethodGet, url, nil, nil)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// LatestReleaseTag returns the tag of the latest release, or "" if the
// repository has no releases.
func (c *Client) LatestReleaseTag(owner, repo string) (string, error) {
	url := c.url("repos", owner, repo, "releases", "latest")
	var release struct {
		TagName string `json:"tag_name"`
	}
	err := c.doJSON(http.MethodGet, url, nil, &release)
	if err == ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return release.TagName, nil
}

// AuthenticatedUser resolves the identity behind the client's token.
func (c *Client) AuthenticatedUser() (*User, error) {
	if c.token == "" {
		return nil, ErrAuthRequired
	}
	var u User
	if err := c.doJSON(http.MethodGet, c.url("user"), nil, &u); err != nil {
		return nil, fmt.Errorf("resolving authenticated user: %w", err)
	}
	return &u, nil
}
