package watsonx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func newIAMServer(t *testing.T) (*httptest.Server, *int64) {
	t.Helper()
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse token form: %v", err)
		}
		if got := r.FormValue("grant_type"); got != "urn:ibm:params:oauth:grant-type:apikey" {
			t.Errorf("unexpected grant_type %q", got)
		}
		if got := r.FormValue("apikey"); got != "test-key" {
			t.Errorf("unexpected apikey %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "iam-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newGenerationServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer iam-token" {
			t.Errorf("unexpected auth header %q", got)
		}
		var req generationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode generation payload: %v", err)
		}
		if req.ModelID != modelID {
			t.Errorf("unexpected model %q", req.ModelID)
		}
		if req.ProjectID != "proj-1" {
			t.Errorf("unexpected project %q", req.ProjectID)
		}
		if !strings.Contains(req.Input, "what is paurax?") {
			t.Errorf("prompt does not embed the user question: %q", req.Input)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"generated_text": text}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerate(t *testing.T) {
	iam, _ := newIAMServer(t)
	gen := newGenerationServer(t, "  PauraX lets citizens fund civic projects. ")

	c := newClient("test-key", "proj-1", iam.URL, gen.URL)

	got := c.Generate(context.Background(), "what is paurax?")
	if got != "PauraX lets citizens fund civic projects." {
		t.Errorf("Generate() = %q", got)
	}
}

func TestGenerateCachesIAMToken(t *testing.T) {
	iam, calls := newIAMServer(t)
	gen := newGenerationServer(t, "answer")

	c := newClient("test-key", "proj-1", iam.URL, gen.URL)

	c.Generate(context.Background(), "what is paurax?")
	c.Generate(context.Background(), "what is paurax?")

	if n := atomic.LoadInt64(calls); n != 1 {
		t.Errorf("expected one token exchange, got %d", n)
	}
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	c := New("", "proj-1")

	if got := c.Generate(context.Background(), "hello"); got != AuthApology {
		t.Errorf("expected auth apology, got %q", got)
	}
}

func TestGenerateTokenExchangeFailure(t *testing.T) {
	iam := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer iam.Close()

	c := newClient("test-key", "proj-1", iam.URL, "http://invalid.invalid")

	if got := c.Generate(context.Background(), "hello"); got != AuthApology {
		t.Errorf("expected auth apology, got %q", got)
	}
}

func TestGenerateCallFailure(t *testing.T) {
	iam, _ := newIAMServer(t)
	gen := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer gen.Close()

	c := newClient("test-key", "proj-1", iam.URL, gen.URL)

	if got := c.Generate(context.Background(), "hello"); got != ThinkingApology {
		t.Errorf("expected thinking apology, got %q", got)
	}
}
