package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestQuery_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/local" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "olive oil" {
			t.Errorf("unexpected query %q", got)
		}
		json.NewEncoder(w).Encode(Result{Response: "Olive oil is an ingredient.", MethodUsed: "api", Success: true})
	}))
	defer server.Close()

	client := New(Params{BaseURL: server.URL})
	result, err := client.Query(context.Background(), "olive oil", "local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Response != "Olive oil is an ingredient." {
		t.Fatalf("unexpected response %q", result.Response)
	}
}

func TestQuery_DefaultMode(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(Result{Response: "ok", Success: true})
	}))
	defer server.Close()

	client := New(Params{BaseURL: server.URL})
	if _, err := client.Query(context.Background(), "anything", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/search/global" {
		t.Fatalf("expected default mode global, got path %q", gotPath)
	}
}

func TestQuery_InvalidMode(t *testing.T) {
	client := New(Params{BaseURL: "http://localhost:1"})
	if _, err := client.Query(context.Background(), "anything", "telepathic"); err == nil {
		t.Fatal("expected error for invalid mode")
	}
}

func TestQuery_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(Params{BaseURL: server.URL, MaxRetries: 2})
	_, err := client.Query(context.Background(), "anything", "local")
	if err == nil {
		t.Fatal("expected error")
	}

	var queryErr *QueryError
	if !errors.As(err, &queryErr) {
		t.Fatalf("expected QueryError, got %T", err)
	}
	if queryErr.Status != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", queryErr.Status)
	}
}

func TestQuery_RetriesTransientFailure(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(Result{Response: "recovered", Success: true})
	}))
	defer server.Close()

	client := New(Params{BaseURL: server.URL, MaxRetries: 3})
	result, err := client.Query(context.Background(), "anything", "global")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Response != "recovered" {
		t.Fatalf("unexpected response %q", result.Response)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestQuery_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := New(Params{BaseURL: server.URL, MaxRetries: 1})
	_, err := client.Query(context.Background(), "anything", "local")
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
	var queryErr *QueryError
	if !errors.As(err, &queryErr) {
		t.Fatalf("expected QueryError, got %T", err)
	}
}
