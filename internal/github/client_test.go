package github_test

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opencatalog/catalogctl/internal/github"
)

func TestGetFileContent_DecodesBase64(t *testing.T) {
	content := "name: Whisper\nrepository: https://github.com/openai/whisper\n"
	// GitHub wraps base64 content at 60 chars with newlines.
	encoded := base64.StdEncoding.EncodeToString([]byte(content))
	wrapped := encoded[:20] + "\n" + encoded[20:]

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/directory/contents/_projects/whisper.yml" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("ref") != "main" {
			t.Errorf("ref = %q, want main", r.URL.Query().Get("ref"))
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"name":     "whisper.yml",
			"path":     "_projects/whisper.yml",
			"sha":      "abc123",
			"encoding": "base64",
			"content":  wrapped,
		})
	}))
	defer srv.Close()

	c := github.New("tok", srv.URL)
	data, sha, err := c.GetFileContent("acme", "directory", "_projects/whisper.yml", "main")
	if err != nil {
		t.Fatalf("GetFileContent: %v", err)
	}
	if string(data) != content {
		t.Errorf("content = %q, want %q", data, content)
	}
	if sha != "abc123" {
		t.Errorf("sha = %q, want abc123", sha)
	}
}

func TestGetFileContent_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := github.New("tok", srv.URL)
	_, _, err := c.GetFileContent("acme", "directory", "missing.yml", "")
	if err != github.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListDirectory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `[
			{"name":"react.yml","path":"_projects/react.yml","sha":"s1","type":"file"},
			{"name":"whisper.yml","path":"_projects/whisper.yml","sha":"s2","type":"file"}
		]`)
	}))
	defer srv.Close()

	c := github.New("", srv.URL)
	entries, err := c.ListDirectory("acme", "directory", "_projects", "main")
	if err != nil {
		t.Fatalf("ListDirectory: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "react.yml" || entries[1].SHA != "s2" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestPutFile_StaleSHAIsConflict(t *testing.T) {
	stored := "original"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			SHA     string `json:"sha"`
			Content string `json:"content"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.SHA != "current-sha" {
			w.WriteHeader(http.StatusConflict)
			return
		}
		raw, _ := base64.StdEncoding.DecodeString(body.Content)
		stored = string(raw)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := github.New("tok", srv.URL)
	err := c.PutFile("acme", "directory", "f.yml", []byte("changed"), "msg", "main", "stale-sha")
	if !errors.Is(err, github.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if stored != "original" {
		t.Errorf("remote content changed on conflicting write: %q", stored)
	}

	if err := c.PutFile("acme", "directory", "f.yml", []byte("changed"), "msg", "main", "current-sha"); err != nil {
		t.Fatalf("PutFile with current sha: %v", err)
	}
	if stored != "changed" {
		t.Errorf("remote content = %q, want %q", stored, "changed")
	}
}

func TestPutFile_NoTokenIsAuthRequired(t *testing.T) {
	c := github.New("", "http://127.0.0.1:0")
	err := c.PutFile("acme", "directory", "f.yml", []byte("x"), "msg", "main", "")
	if !errors.Is(err, github.ErrAuthRequired) {
		t.Errorf("err = %v, want ErrAuthRequired", err)
	}
}

func TestDeleteFile_SendsSHA(t *testing.T) {
	var gotSHA, gotBranch string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		var body struct {
			SHA    string `json:"sha"`
			Branch string `json:"branch"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotSHA, gotBranch = body.SHA, body.Branch
	}))
	defer srv.Close()

	c := github.New("tok", srv.URL)
	if err := c.DeleteFile("acme", "directory", "f.yml", "sha1", "remove f", "main"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if gotSHA != "sha1" || gotBranch != "main" {
		t.Errorf("sha=%q branch=%q", gotSHA, gotBranch)
	}
}

func TestRateLimit_Exhausted403(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := github.New("", srv.URL)
	_, err := c.GetRepo("acme", "directory")
	if err != github.ErrRateLimited {
		t.Errorf("err = %v, want ErrRateLimited", err)
	}
}

func TestCreateBranch_ResolvesBaseRef(t *testing.T) {
	var createdRef, createdSHA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/repos/acme/directory/git/ref/heads/main":
			_, _ = fmt.Fprint(w, `{"ref":"refs/heads/main","object":{"sha":"base-sha"}}`)
		case r.URL.Path == "/repos/acme/directory/git/refs" && r.Method == http.MethodPost:
			var body struct {
				Ref string `json:"ref"`
				SHA string `json:"sha"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			createdRef, createdSHA = body.Ref, body.SHA
			w.WriteHeader(http.StatusCreated)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := github.New("tok", srv.URL)
	if err := c.CreateBranch("acme", "directory", "add-project-x", "main"); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	if createdRef != "refs/heads/add-project-x" || createdSHA != "base-sha" {
		t.Errorf("ref=%q sha=%q", createdRef, createdSHA)
	}
}

func TestOpenPullRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"number":7,"html_url":"https://github.com/acme/directory/pull/7"}`)
	}))
	defer srv.Close()

	c := github.New("tok", srv.URL)
	pr, err := c.OpenPullRequest("acme", "directory", "Add project", "body", "add-x", "main")
	if err != nil {
		t.Fatalf("OpenPullRequest: %v", err)
	}
	if pr.Number != 7 || pr.HTMLURL == "" {
		t.Errorf("unexpected PR: %+v", pr)
	}
}

func TestListContributors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `[{"login":"Alice","avatar_url":"a.png","contributions":12}]`)
	}))
	defer srv.Close()

	c := github.New("", srv.URL)
	contributors, err := c.ListContributors("openai", "whisper")
	if err != nil {
		t.Fatalf("ListContributors: %v", err)
	}
	if len(contributors) != 1 || contributors[0].Login != "Alice" {
		t.Errorf("unexpected contributors: %+v", contributors)
	}
}
