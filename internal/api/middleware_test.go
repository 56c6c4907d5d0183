package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/domain-scout/internal/logger"
)

func newMiddlewareRouter(t *testing.T, mw ...gin.HandlerFunc) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	r := newMiddlewareRouter(t, RequestIDMiddleware())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	r.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a generated request ID header")
	}
}

func TestRequestIDMiddleware_HonoursSuppliedID(t *testing.T) {
	r := newMiddlewareRouter(t, RequestIDMiddleware())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	req.Header.Set("X-Request-ID", "upstream-id")
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "upstream-id" {
		t.Fatalf("expected upstream-id, got %q", got)
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	cfg := CORSConfig{Enabled: true, AllowedOrigins: []string{"https://app.example.com"}}
	r := newMiddlewareRouter(t, CORSMiddleware(cfg))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ping", http.NoBody)
	req.Header.Set("Origin", "https://app.example.com")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("expected origin echoed back, got %q", got)
	}
}

func TestCORSMiddleware_DisallowedOrigin(t *testing.T) {
	cfg := CORSConfig{Enabled: true, AllowedOrigins: []string{"https://app.example.com"}}
	r := newMiddlewareRouter(t, CORSMiddleware(cfg))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS headers for disallowed origin, got %q", got)
	}
}

func TestRecoveryMiddleware_Returns500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RecoveryMiddleware(logger.NewNop()))
	r.GET("/panic", func(*gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", http.NoBody)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestHealthHandler_AllChecksPass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	checks := map[string]HealthChecker{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return nil },
	}
	r.GET("/health", healthHandler("domain-scout", "0.1.0", checks, map[string]bool{"database": true}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != StatusHealthy {
		t.Fatalf("expected healthy, got %q", resp.Status)
	}
}

func TestHealthHandler_CriticalFailureIsUnhealthy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	checks := map[string]HealthChecker{
		"database": func(context.Context) error { return errors.New("connection refused") },
	}
	r.GET("/health", healthHandler("domain-scout", "0.1.0", checks, map[string]bool{"database": true}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestHealthHandler_NonCriticalFailureDegrades(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	checks := map[string]HealthChecker{
		"redis": func(context.Context) error { return errors.New("connection refused") },
	}
	r.GET("/health", healthHandler("domain-scout", "0.1.0", checks, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for degraded service, got %d", w.Code)
	}

	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != StatusDegraded {
		t.Fatalf("expected degraded, got %q", resp.Status)
	}
}
