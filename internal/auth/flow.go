package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/opencatalog/catalogctl/internal/util"
)

const defaultAuthorizeURL = "https://github.com/login/oauth/authorize"

// DefaultLoginTimeout is how long Login waits for the browser callback
// before giving up. The user may close the browser without completing the
// flow; the CLI must not hang on that.
const DefaultLoginTimeout = 3 * time.Minute

// Flow drives the browser OAuth login: authorization redirect, loopback
// callback, code exchange through the proxy, token persistence.
type Flow struct {
	Proxy       *ProxyClient
	Store       *Store
	RedirectURI string

	// AuthorizeURL overrides the GitHub authorize endpoint (tests).
	AuthorizeURL string
	// OpenBrowser opens the authorization URL; defaults to the platform opener.
	OpenBrowser func(url string) error
	// Timeout bounds the wait for the callback; defaults to DefaultLoginTimeout.
	Timeout time.Duration
}

type callbackResult struct {
	code  string
	state string
	err   error
}

// Login runs the full flow and stores the resulting token.
func (f *Flow) Login() error {
	clientID, err := f.Proxy.ClientID()
	if err != nil {
		return fmt.Errorf("fetching client id: %w", err)
	}

	state, err := nonce()
	if err != nil {
		return err
	}

	redirect, err := url.Parse(f.RedirectURI)
	if err != nil {
		return fmt.Errorf("parsing redirect URI: %w", err)
	}

	ln, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", redirect.Host, err)
	}

	results := make(chan callbackResult, 1)
	srv := &http.Server{Handler: callbackHandler(redirect.Path, state, results)}
	go func() { _ = srv.Serve(ln) }()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	authorizeURL := f.AuthorizeURL
	if authorizeURL == "" {
		authorizeURL = defaultAuthorizeURL
	}
	q := url.Values{}
	q.Set("client_id", clientID)
	q.Set("redirect_uri", f.RedirectURI)
	q.Set("scope", "read:user public_repo")
	q.Set("state", state)

	open := f.OpenBrowser
	if open == nil {
		open = util.OpenURL
	}
	if err := open(authorizeURL + "?" + q.Encode()); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}

	timeout := f.Timeout
	if timeout == 0 {
		timeout = DefaultLoginTimeout
	}

	var code string
	select {
	case r := <-results:
		if r.err != nil {
			return r.err
		}
		code = r.code
	case <-time.After(timeout):
		return ErrLoginTimeout
	}

	token, err := f.Proxy.ExchangeCode(code)
	if err != nil {
		return err
	}
	return f.Store.Set(token)
}

// Logout clears the stored session. There is no server-side session to
// invalidate.
func (f *Flow) Logout() error {
	return f.Store.Clear()
}

// callbackHandler accepts the provider redirect, validates the state nonce,
// and hands the code to the waiting Login call.
func callbackHandler(path, wantState string, results chan<- callbackResult) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if path != "" && path != "/" && r.URL.Path != path {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if errName := q.Get("error"); errName != "" {
			http.Error(w, "Authorization failed. You can close this window.", http.StatusBadRequest)
			select {
			case results <- callbackResult{err: fmt.Errorf("authorization denied: %s", errName)}:
			default:
			}
			return
		}
		if q.Get("state") != wantState {
			http.Error(w, "State mismatch. You can close this window.", http.StatusBadRequest)
			select {
			case results <- callbackResult{err: fmt.Errorf("state mismatch in OAuth callback")}:
			default:
			}
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, "<html><body>Logged in. You can close this window.</body></html>")
		select {
		case results <- callbackResult{code: q.Get("code"), state: q.Get("state")}:
		default:
		}
	})
}

func nonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

