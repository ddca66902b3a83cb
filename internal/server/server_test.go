package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecotrace/wastewatch/internal/events"
)

func TestHealthCheck(t *testing.T) {
	srv := New(Config{Port: 0}, http.NotFoundHandler(), events.NewHub())

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := New(Config{Port: 0, AllowAll: true}, http.NotFoundHandler(), nil)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestMCPMount(t *testing.T) {
	var hit bool
	mcpHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		w.WriteHeader(http.StatusOK)
	})

	srv := New(Config{Port: 0}, mcpHandler, nil)

	req := httptest.NewRequest("POST", "/mcp", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if !hit {
		t.Error("request to /mcp did not reach the mounted handler")
	}
}
