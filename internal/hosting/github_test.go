package hosting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, mux *http.ServeMux, opts ...Option) *GitHubClient {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	opts = append([]Option{WithBaseURL(server.URL)}, opts...)
	c, err := NewGitHubClient(server.Client(), "test-token", "jina-ai/jina-hub", opts...)
	if err != nil {
		t.Fatalf("NewGitHubClient() error: %v", err)
	}
	return c
}

func TestNewGitHubClient_Validation(t *testing.T) {
	if _, err := NewGitHubClient(nil, "", "jina-ai/jina-hub"); !errors.Is(err, ErrMissingToken) {
		t.Errorf("expected ErrMissingToken, got %v", err)
	}
	for _, slug := range []string{"jina-hub", "/jina-hub", "jina-ai/", "a/b/c"} {
		if _, err := NewGitHubClient(nil, "token", slug); err == nil {
			t.Errorf("expected error for slug %q", slug)
		}
	}
	if _, err := NewGitHubClient(nil, "token", "jina-ai/jina-hub", WithMergeMethod("octopus")); err == nil {
		t.Error("expected error for unknown merge method")
	}

	c, err := NewGitHubClient(nil, "token", "jina-ai/jina-hub")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.owner != "jina-ai" || c.repo != "jina-hub" {
		t.Errorf("owner/repo = %q/%q, want jina-ai/jina-hub", c.owner, c.repo)
	}
}

func TestGitHubClient_CreatePullRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/jina-ai/jina-hub/pulls", func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); !strings.HasSuffix(auth, "test-token") {
			t.Errorf("unexpected Authorization header %q", auth)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
			return
		}
		if body["head"] != "chore-myencoder-1-2-4-core-2-0-0" || body["base"] != "master" {
			t.Errorf("unexpected head/base: %v", body)
		}
		if body["title"] != "bumping version for MyEncoder to 1.2.4" {
			t.Errorf("unexpected title: %v", body["title"])
		}

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"number": 42, "title": "bumping version for MyEncoder to 1.2.4",
			"html_url": "https://github.com/jina-ai/jina-hub/pull/42", "state": "open",
			"head": {"ref": "chore-myencoder-1-2-4-core-2-0-0"}, "base": {"ref": "master"}}`)
	})

	c := newTestClient(t, mux)
	pr, err := c.CreatePullRequest(context.Background(), NewPullRequest{
		Title: "bumping version for MyEncoder to 1.2.4",
		Body:  "bumping version from 1.2.3 to 1.2.4",
		Head:  "chore-myencoder-1-2-4-core-2-0-0",
		Base:  "master",
	})
	if err != nil {
		t.Fatalf("CreatePullRequest() error: %v", err)
	}
	if pr.Number != 42 || pr.HeadRef != "chore-myencoder-1-2-4-core-2-0-0" || pr.BaseRef != "master" {
		t.Errorf("unexpected pull request: %+v", pr)
	}
	if pr.URL != "https://github.com/jina-ai/jina-hub/pull/42" {
		t.Errorf("URL = %q", pr.URL)
	}
}

func TestGitHubClient_CreatePullRequest_Error(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/jina-ai/jina-hub/pulls", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message": "Validation Failed"}`)
	})

	c := newTestClient(t, mux)
	_, err := c.CreatePullRequest(context.Background(), NewPullRequest{Head: "chore-x", Base: "master"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "chore-x") {
		t.Errorf("expected branch name in error, got %v", err)
	}
}

func TestGitHubClient_ListOpenPullRequests(t *testing.T) {
	var serverURL string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/jina-ai/jina-hub/pulls", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("head") != "jina-ai:chore-x" {
			t.Errorf("head = %q, want %q", q.Get("head"), "jina-ai:chore-x")
		}
		if q.Get("state") != "open" {
			t.Errorf("state = %q, want open", q.Get("state"))
		}

		if q.Get("page") == "" {
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/jina-ai/jina-hub/pulls?page=2>; rel="next"`, serverURL))
			fmt.Fprint(w, `[{"number": 1, "head": {"ref": "chore-x"}}]`)
			return
		}
		fmt.Fprint(w, `[{"number": 2, "head": {"ref": "chore-x"}}]`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	serverURL = server.URL

	c, err := NewGitHubClient(server.Client(), "test-token", "jina-ai/jina-hub", WithBaseURL(server.URL))
	if err != nil {
		t.Fatal(err)
	}

	prs, err := c.ListOpenPullRequests(context.Background(), "chore-x")
	if err != nil {
		t.Fatalf("ListOpenPullRequests() error: %v", err)
	}
	if len(prs) != 2 || prs[0].Number != 1 || prs[1].Number != 2 {
		t.Errorf("unexpected pull requests: %v", prs)
	}
}

func TestGitHubClient_GetPullRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/jina-ai/jina-hub/pulls/7", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"number": 7, "mergeable_state": "blocked", "head": {"ref": "chore-y"}}`)
	})

	c := newTestClient(t, mux)
	pr, err := c.GetPullRequest(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetPullRequest() error: %v", err)
	}
	if !pr.IsBlocked() {
		t.Errorf("expected blocked pull request, got state %q", pr.MergeableState)
	}
	if pr.String() != "#7 (chore-y)" {
		t.Errorf("String() = %q", pr.String())
	}

	if _, err := c.GetPullRequest(context.Background(), 8); err == nil {
		t.Error("expected error for unknown pull request")
	}
}

func TestGitHubClient_MergePullRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /repos/jina-ai/jina-hub/pulls/{number}/merge", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
			return
		}
		if body["merge_method"] != "squash" {
			t.Errorf("merge_method = %v, want squash", body["merge_method"])
		}
		if body["commit_message"] != "automatic merge" {
			t.Errorf("commit_message = %v", body["commit_message"])
		}

		switch r.PathValue("number") {
		case "1":
			fmt.Fprint(w, `{"merged": true, "message": "Pull Request successfully merged"}`)
		case "2":
			fmt.Fprint(w, `{"merged": false, "message": "Head branch was modified"}`)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
			fmt.Fprint(w, `{"message": "Pull Request is not mergeable"}`)
		}
	})

	c := newTestClient(t, mux, WithMergeMethod(MergeMethodSquash))
	ctx := context.Background()

	if err := c.MergePullRequest(ctx, 1, "automatic merge"); err != nil {
		t.Errorf("expected merge to succeed, got %v", err)
	}
	if err := c.MergePullRequest(ctx, 2, "automatic merge"); err == nil || !strings.Contains(err.Error(), "Head branch was modified") {
		t.Errorf("expected not-merged error, got %v", err)
	}
	if err := c.MergePullRequest(ctx, 3, "automatic merge"); err == nil {
		t.Error("expected API error, got nil")
	}
}

func TestSplitSlug(t *testing.T) {
	owner, name, err := SplitSlug("jina-ai/jina-hub")
	if err != nil || owner != "jina-ai" || name != "jina-hub" {
		t.Errorf("SplitSlug() = (%q, %q, %v)", owner, name, err)
	}
}
