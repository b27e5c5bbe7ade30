package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	cfg := testConfig(t)
	cfg.BearerToken = "secret-token"
	srv := testServer(t, cfg, successSynth(t))

	called := false
	handler := srv.withAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()

	handler(w, req)

	if called {
		t.Error("handler should not have been called without auth")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != "missing authorization header" {
		t.Errorf("expected error 'missing authorization header', got '%s'", resp.Error)
	}
}

func TestAuthMiddlewareInvalidFormat(t *testing.T) {
	cfg := testConfig(t)
	cfg.BearerToken = "secret-token"
	srv := testServer(t, cfg, successSynth(t))

	called := false
	handler := srv.withAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz") // Basic auth format
	w := httptest.NewRecorder()

	handler(w, req)

	if called {
		t.Error("handler should not have been called with invalid auth format")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	cfg := testConfig(t)
	cfg.BearerToken = "secret-token"
	srv := testServer(t, cfg, successSynth(t))

	called := false
	handler := srv.withAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer wrong-token")
	w := httptest.NewRecorder()

	handler(w, req)

	if called {
		t.Error("handler should not have been called with invalid token")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	cfg := testConfig(t)
	cfg.BearerToken = "secret-token"
	srv := testServer(t, cfg, successSynth(t))

	called := false
	handler := srv.withAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	w := httptest.NewRecorder()

	handler(w, req)

	if !called {
		t.Error("handler should have been called with valid token")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestAuthMiddlewareNoBearerConfigured(t *testing.T) {
	cfg := testConfig(t)
	cfg.BearerToken = "" // No token configured
	srv := testServer(t, cfg, successSynth(t))

	called := false
	handler := srv.withAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	// No authorization header
	w := httptest.NewRecorder()

	handler(w, req)

	if !called {
		t.Error("handler should have been called when no bearer token is configured")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestAuthMiddlewareCaseInsensitiveBearer(t *testing.T) {
	cfg := testConfig(t)
	cfg.BearerToken = "secret-token"
	srv := testServer(t, cfg, successSynth(t))

	called := false
	handler := srv.withAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "bearer secret-token") // lowercase 'bearer'
	w := httptest.NewRecorder()

	handler(w, req)

	if !called {
		t.Error("handler should have been called with lowercase 'bearer'")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestCORSAllowedOrigin(t *testing.T) {
	srv := testServer(t, testConfig(t), successSynth(t))

	req := httptest.NewRequest("GET", "/v1/healthz", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := doRequest(srv, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q, want http://localhost:3000", got)
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	srv := testServer(t, testConfig(t), successSynth(t))

	req := httptest.NewRequest("GET", "/v1/healthz", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := doRequest(srv, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q for disallowed origin, want empty", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := testServer(t, testConfig(t), successSynth(t))

	req := httptest.NewRequest("OPTIONS", "/v1/synthesize", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := doRequest(srv, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("preflight response missing Access-Control-Allow-Methods")
	}
}

func TestCORSWildcardOrigin(t *testing.T) {
	cfg := testConfig(t)
	cfg.AllowedOrigins = []string{"*"}
	srv := testServer(t, cfg, successSynth(t))

	req := httptest.NewRequest("GET", "/v1/healthz", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	w := doRequest(srv, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://anywhere.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the request origin", got)
	}
}
