package http

import (
	"bytes"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofrs/uuid/v5"
)

func TestRoutePatternCollapsesIDs(t *testing.T) {
	cases := []struct{ path, want string }{
		{"/api/players/42", "/api/players/{id}"},
		{"/api/matches/7/apply", "/api/matches/{id}/apply"},
		{"/api/pools/3/players/12", "/api/pools/{id}/players/{id}"},
		{"/api/profiles/" + uuid.Must(uuid.NewV4()).String(), "/api/profiles/{id}"},
		{"/health", "/health"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(nethttp.MethodGet, tc.path, nil)
		if got := routePattern(req); got != tc.want {
			t.Fatalf("routePattern(%s) = %s, want %s", tc.path, got, tc.want)
		}
	}
}

func TestIsPublicPath(t *testing.T) {
	public := []string{"/health", "/ready", "/api/auth/login", "/api/auth/register"}
	for _, p := range public {
		if !isPublicPath(p) {
			t.Fatalf("%s must be public", p)
		}
	}
	private := []string{"/api/players", "/api/matches/1/apply", "/api/profiles/me"}
	for _, p := range private {
		if isPublicPath(p) {
			t.Fatalf("%s must require auth", p)
		}
	}
}

func TestLoggingMiddlewareEchoesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	next := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusTeapot)
	})
	req := httptest.NewRequest(nethttp.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()

	LoggingMiddleware(logger, next).ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("expected echoed request ID, got %q", got)
	}
	if !strings.Contains(buf.String(), `"status_code":418`) {
		t.Fatalf("expected logged status, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"request_id":"abc-123"`) {
		t.Fatalf("expected logged request id, got %s", buf.String())
	}
}

func TestLoggingMiddlewareReplacesUnsafeRequestID(t *testing.T) {
	next := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {})
	req := httptest.NewRequest(nethttp.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "bad id\n")
	rec := httptest.NewRecorder()

	LoggingMiddleware(nil, next).ServeHTTP(rec, req)

	got := rec.Header().Get("X-Request-ID")
	if got == "" || got == "bad id\n" {
		t.Fatalf("expected a replaced request ID, got %q", got)
	}
}
