package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(Logger(logger))
	r.Get("/api/token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/token", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(200) {
		t.Errorf("expected status 200, got %v", fields["status"])
	}
	if fields["bytes"] != int64(2) {
		t.Errorf("expected 2 bytes, got %v", fields["bytes"])
	}
	if fields["route"] != "/api/token" {
		t.Errorf("expected route /api/token, got %v", fields["route"])
	}
	if id, _ := fields["request_id"].(string); id == "" {
		t.Error("expected request id to be logged")
	}

	req = httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	warn := logs.FilterMessage("HTTP request").FilterField(zap.Int("status", http.StatusBadGateway)).All()
	if len(warn) != 1 || warn[0].Level != zap.WarnLevel {
		t.Errorf("expected server error to be logged at warn level, got %v", warn)
	}
}

func TestRoutePattern(t *testing.T) {
	var seen string
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req)
			seen = routePattern(req)
		})
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/wallet-pnl", func(w http.ResponseWriter, r *http.Request) {})
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/wallet-pnl", nil))
	if seen != "/api/wallet-pnl" {
		t.Errorf("expected /api/wallet-pnl, got %q", seen)
	}

	plain := httptest.NewRequest(http.MethodGet, "/anything", nil)
	if got := routePattern(plain); got != unmatchedRoute {
		t.Errorf("expected %q without routing context, got %q", unmatchedRoute, got)
	}
}

func TestRateLimiter(t *testing.T) {
	handler := RateLimiter(1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/token", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/token", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", second.Code)
	}
	if ct := second.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}
}

func TestMetrics_PassesThrough(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusTeapot {
		t.Errorf("expected status 418, got %d", w.Code)
	}
}
