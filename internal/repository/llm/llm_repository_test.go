package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"recomart/domain"
)

func TestComplete_Success(t *testing.T) {
	var gotAuth, gotModel string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		gotModel = req.Model

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": `[{"product_id":1,"reason":"x"}]`}},
			},
		})
	}))
	defer srv.Close()

	repo := NewLLMRepository(LLMConfig{BaseURL: srv.URL, APIKey: "secret", Model: "test-model"})

	content, err := repo.Complete(context.Background(), "system", "user")
	if err != nil {
		t.Fatal(err)
	}

	if content != `[{"product_id":1,"reason":"x"}]` {
		t.Fatalf("unexpected content: %q", content)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotModel != "test-model" {
		t.Fatalf("unexpected model: %q", gotModel)
	}
}

func TestComplete_Unconfigured(t *testing.T) {
	repo := NewLLMRepository(LLMConfig{})

	if repo.IsConfigured() {
		t.Fatal("empty config should not count as configured")
	}

	_, err := repo.Complete(context.Background(), "system", "user")

	var provErr *domain.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("want ProviderError, got %v", err)
	}
	if provErr.Transient {
		t.Fatal("unconfigured provider must be a permanent error")
	}
}

func TestComplete_ServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := NewLLMRepository(LLMConfig{BaseURL: srv.URL, APIKey: "k", Model: "m"})

	_, err := repo.Complete(context.Background(), "system", "user")

	var provErr *domain.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("want ProviderError, got %v", err)
	}
	if !provErr.Transient {
		t.Fatal("5xx must be transient")
	}
}

func TestComplete_ClientErrorIsPermanent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	repo := NewLLMRepository(LLMConfig{BaseURL: srv.URL, APIKey: "k", Model: "m"})

	_, err := repo.Complete(context.Background(), "system", "user")

	var provErr *domain.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("want ProviderError, got %v", err)
	}
	if provErr.Transient {
		t.Fatal("4xx must be permanent")
	}
}

func TestComplete_ConnectionErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	repo := NewLLMRepository(LLMConfig{BaseURL: srv.URL, APIKey: "k", Model: "m"})

	_, err := repo.Complete(context.Background(), "system", "user")

	var provErr *domain.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("want ProviderError, got %v", err)
	}
	if !provErr.Transient {
		t.Fatal("connection refused must be transient")
	}
}

func TestComplete_MalformedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	repo := NewLLMRepository(LLMConfig{BaseURL: srv.URL, APIKey: "k", Model: "m"})

	_, err := repo.Complete(context.Background(), "system", "user")

	var provErr *domain.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("want ProviderError, got %v", err)
	}
	if provErr.Transient {
		t.Fatal("malformed envelope must be permanent")
	}
}

func TestComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	repo := NewLLMRepository(LLMConfig{BaseURL: srv.URL, APIKey: "k", Model: "m"})

	_, err := repo.Complete(context.Background(), "system", "user")

	var provErr *domain.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("want ProviderError, got %v", err)
	}
}
