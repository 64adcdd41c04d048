package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]Entry{})
	}))
	defer srv.Close()

	cli, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := cli.ListEntries(context.Background(), "my-token"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer my-token" {
		t.Fatalf("unexpected authorization header: %q", gotAuth)
	}
}

func TestClientSurfacesAPIErrorWithStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid or expired token"})
	}))
	defer srv.Close()

	cli, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = cli.ListEntries(context.Background(), "stale")
	var apiErr APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", apiErr.Status)
	}
	if apiErr.Message != "invalid or expired token" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestClientFlattensFieldErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"field":"email","message":"must be a valid email address"},{"field":"password","message":"must be at least 6 characters"}]}`))
	}))
	defer srv.Close()

	cli, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = cli.Register(context.Background(), "bad", "x")
	var apiErr APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	want := "email must be a valid email address; password must be at least 6 characters"
	if apiErr.Message != want {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestSortEntriesOrdersByDateDescending(t *testing.T) {
	entries := []Entry{
		{ID: "a", Date: "2024-01-01"},
		{ID: "b", Date: "2024-01-03"},
		{ID: "c", Date: "2024-01-02"},
	}
	SortEntries(entries)
	want := []string{"2024-01-03", "2024-01-02", "2024-01-01"}
	for i := range want {
		if entries[i].Date != want[i] {
			t.Fatalf("unexpected order at %d: %s", i, entries[i].Date)
		}
	}
}
