package auth

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// SessionTTL bounds how long a stored user token is trusted before the
// user must log in again. Tokens carry no refresh mechanism, so expiry is
// enforced here rather than assumed away.
const SessionTTL = 8 * time.Hour

const sessionFile = "session.json"

// Store holds the user credential between CLI invocations.
type Store struct {
	dir string
}

type session struct {
	Token      string    `json:"token"`
	ObtainedAt time.Time `json:"obtained_at"`
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Set persists the token with the current timestamp.
func (s *Store) Set(token string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}
	data, err := json.Marshal(session{Token: token, ObtainedAt: time.Now()})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, 0600)
}

// Get returns the stored token. An absent or expired session returns
// ErrNotLoggedIn; an expired session file is removed.
func (s *Store) Get() (string, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return "", ErrNotLoggedIn
	}
	var sess session
	if err := json.Unmarshal(data, &sess); err != nil {
		return "", ErrNotLoggedIn
	}
	if sess.Token == "" || time.Since(sess.ObtainedAt) >= SessionTTL {
		_ = s.Clear()
		return "", ErrNotLoggedIn
	}
	return sess.Token, nil
}

// Clear removes the stored session.
func (s *Store) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// IsAuthenticated is a presence and freshness check only; it does not
// validate the token against GitHub.
func (s *Store) IsAuthenticated() bool {
	_, err := s.Get()
	return err == nil
}

func (s *Store) path() string {
	return filepath.Join(s.dir, sessionFile)
}
