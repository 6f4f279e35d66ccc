package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"scholarship-intake/internal/applications"
	"scholarship-intake/internal/services/health"
	"scholarship-intake/internal/shared/config"
	"scholarship-intake/internal/shared/server/middleware"
)

type failingPing struct{}

func (failingPing) Ping(context.Context) error { return errors.New("store offline") }

func testRouter(t *testing.T, checks map[string]health.Pinger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := &applications.Service{Repo: applications.NewMemoryRepo()}
	return NewRouter(RouterDeps{
		Config:       config.Config{RateLimitRPS: 1, RateLimitBurst: 2},
		Applications: applications.NewHandler(svc),
		Form:         applications.NewFormHandler(svc),
		Health:       health.NewService(checks),
		RateLimiter:  middleware.NewRateLimiter(func() time.Time { return time.Unix(0, 0) }),
	})
}

func TestRouterMountsRoutes(t *testing.T) {
	r := testRouter(t, nil)
	for _, path := range []string{"/", "/api/v1/health", "/api/v1/applications", "/api/v1/applications/export.csv", "/metrics"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, w.Code)
		}
		if w.Header().Get("X-Request-Id") == "" {
			t.Fatalf("GET %s: missing request id", path)
		}
	}
}

func TestHealthUnavailableWhenStoreFails(t *testing.T) {
	r := testRouter(t, map[string]health.Pinger{"store": failingPing{}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if w.Code != http.StatusServiceUnavailable || !strings.Contains(w.Body.String(), "store offline") {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
}

func TestSubmissionsAreRateLimited(t *testing.T) {
	r := testRouter(t, nil)
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusBadRequest || codes[1] != http.StatusBadRequest || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}

	// Reads use their own, larger bucket.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected reads to pass, got %d", w.Code)
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
