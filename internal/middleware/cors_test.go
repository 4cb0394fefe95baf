package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORSPreflight(t *testing.T) {
	wrapped := EnableCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the inner handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/dispatch", nil)
	req.Header.Set("Origin", "https://vendor.example")
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://vendor.example" {
		t.Fatalf("allow-origin %q, want request origin echoed", got)
	}
	if w.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatal("allow-methods header missing")
	}
}

func TestCORSPassesThrough(t *testing.T) {
	called := false
	wrapped := EnableCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	if !called {
		t.Fatal("inner handler not reached")
	}
	if w.Code != http.StatusTeapot {
		t.Fatalf("status %d, want inner handler status", w.Code)
	}
}
