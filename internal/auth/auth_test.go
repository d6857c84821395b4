package auth_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/opencatalog/catalogctl/internal/auth"
)

// --- ProxyClient ---

func proxyStub(t *testing.T, exchangeStatus int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/client-id":
			_, _ = fmt.Fprint(w, `{"client_id":"Iv1.abc"}`)
		case "/exchange-token":
			if exchangeStatus != http.StatusOK {
				w.WriteHeader(exchangeStatus)
				return
			}
			_, _ = fmt.Fprint(w, `{"access_token":"gho_user"}`)
		case "/github-token":
			_, _ = fmt.Fprint(w, `{"token":"gho_service"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestProxyClient_ClientID(t *testing.T) {
	srv := proxyStub(t, http.StatusOK)
	defer srv.Close()

	p := auth.NewProxyClient(srv.URL)
	id, err := p.ClientID()
	if err != nil {
		t.Fatalf("ClientID: %v", err)
	}
	if id != "Iv1.abc" {
		t.Errorf("id = %q", id)
	}
}

func TestProxyClient_ExchangeCode(t *testing.T) {
	srv := proxyStub(t, http.StatusOK)
	defer srv.Close()

	p := auth.NewProxyClient(srv.URL)
	token, err := p.ExchangeCode("the-code")
	if err != nil {
		t.Fatalf("ExchangeCode: %v", err)
	}
	if token != "gho_user" {
		t.Errorf("token = %q", token)
	}
}

func TestProxyClient_ExchangeCodeRejected(t *testing.T) {
	srv := proxyStub(t, http.StatusBadRequest)
	defer srv.Close()

	p := auth.NewProxyClient(srv.URL)
	_, err := p.ExchangeCode("bad-code")
	if !errors.Is(err, auth.ErrAuthExchangeFailed) {
		t.Errorf("err = %v, want ErrAuthExchangeFailed", err)
	}
}

func TestProxyClient_ServiceToken(t *testing.T) {
	srv := proxyStub(t, http.StatusOK)
	defer srv.Close()

	p := auth.NewProxyClient(srv.URL)
	token, err := p.ServiceToken()
	if err != nil {
		t.Fatalf("ServiceToken: %v", err)
	}
	if token != "gho_service" {
		t.Errorf("token = %q", token)
	}
}

// --- Store ---

func TestStore_SetGetClear(t *testing.T) {
	s := auth.NewStore(t.TempDir())

	if s.IsAuthenticated() {
		t.Error("authenticated before Set")
	}
	if _, err := s.Get(); !errors.Is(err, auth.ErrNotLoggedIn) {
		t.Errorf("Get before Set: %v", err)
	}

	if err := s.Set("gho_x"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	token, err := s.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if token != "gho_x" {
		t.Errorf("token = %q", token)
	}
	if !s.IsAuthenticated() {
		t.Error("not authenticated after Set")
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.IsAuthenticated() {
		t.Error("authenticated after Clear")
	}
}

func TestStore_ExpiredSessionRejected(t *testing.T) {
	dir := t.TempDir()
	s := auth.NewStore(dir)

	stale := fmt.Sprintf(`{"token":"gho_old","obtained_at":%q}`,
		time.Now().Add(-auth.SessionTTL-time.Minute).Format(time.RFC3339))
	if err := os.WriteFile(filepath.Join(dir, "session.json"), []byte(stale), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Get(); !errors.Is(err, auth.ErrNotLoggedIn) {
		t.Errorf("expired session Get: %v", err)
	}
	if s.IsAuthenticated() {
		t.Error("expired session counts as authenticated")
	}
}

// --- Flow ---

// browserStub follows the authorize URL like a user's browser would: it
// extracts state and redirect_uri and immediately calls back with a code.
func browserStub(t *testing.T, code string, mangleState bool) func(string) error {
	t.Helper()
	return func(authorizeURL string) error {
		u, err := url.Parse(authorizeURL)
		if err != nil {
			return err
		}
		state := u.Query().Get("state")
		if mangleState {
			state = "forged"
		}
		redirect := u.Query().Get("redirect_uri")
		go func() {
			resp, err := http.Get(redirect + "?code=" + code + "&state=" + state)
			if err == nil {
				_ = resp.Body.Close()
			}
		}()
		return nil
	}
}

func TestFlow_Login(t *testing.T) {
	srv := proxyStub(t, http.StatusOK)
	defer srv.Close()

	store := auth.NewStore(t.TempDir())
	f := &auth.Flow{
		Proxy:       auth.NewProxyClient(srv.URL),
		Store:       store,
		RedirectURI: "http://127.0.0.1:18428/callback",
		OpenBrowser: browserStub(t, "auth-code", false),
		Timeout:     5 * time.Second,
	}

	if err := f.Login(); err != nil {
		t.Fatalf("Login: %v", err)
	}
	token, err := store.Get()
	if err != nil {
		t.Fatalf("Get after Login: %v", err)
	}
	if token != "gho_user" {
		t.Errorf("stored token = %q", token)
	}
}

func TestFlow_LoginRejectsForgedState(t *testing.T) {
	srv := proxyStub(t, http.StatusOK)
	defer srv.Close()

	store := auth.NewStore(t.TempDir())
	f := &auth.Flow{
		Proxy:       auth.NewProxyClient(srv.URL),
		Store:       store,
		RedirectURI: "http://127.0.0.1:18429/callback",
		OpenBrowser: browserStub(t, "auth-code", true),
		Timeout:     5 * time.Second,
	}

	if err := f.Login(); err == nil {
		t.Fatal("Login accepted a forged state")
	}
	if store.IsAuthenticated() {
		t.Error("token stored despite state mismatch")
	}
}

func TestFlow_LoginTimeout(t *testing.T) {
	srv := proxyStub(t, http.StatusOK)
	defer srv.Close()

	f := &auth.Flow{
		Proxy:       auth.NewProxyClient(srv.URL),
		Store:       auth.NewStore(t.TempDir()),
		RedirectURI: "http://127.0.0.1:18430/callback",
		OpenBrowser: func(string) error { return nil }, // user never completes
		Timeout:     100 * time.Millisecond,
	}

	if err := f.Login(); !errors.Is(err, auth.ErrLoginTimeout) {
		t.Errorf("err = %v, want ErrLoginTimeout", err)
	}
}

func TestFlow_Logout(t *testing.T) {
	store := auth.NewStore(t.TempDir())
	if err := store.Set("gho_x"); err != nil {
		t.Fatal(err)
	}
	f := &auth.Flow{Store: store}
	if err := f.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if store.IsAuthenticated() {
		t.Error("still authenticated after Logout")
	}
}
