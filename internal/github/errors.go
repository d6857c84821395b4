package github

import "errors"

// Common GitHub API errors.
var (
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAuthRequired is returned when the operation needs a token and
	// none was supplied, or the token was rejected.
	ErrAuthRequired = errors.New("authentication required — login or set a GitHub token")
	// ErrForbidden is returned when authorization fails.
	ErrForbidden = errors.New("forbidden — token may lack required scope (needs 'repo')")
	// ErrConflict is returned when an update carries a stale content sha.
	ErrConflict = errors.New("conflict — file changed since it was last read")
	// ErrRateLimited is returned when the API quota is exhausted.
	ErrRateLimited = errors.New("rate limited — GitHub API quota exhausted, try again later")
)
