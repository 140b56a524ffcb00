package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/sjounng/team-draft-lol/internal/auth"
	"github.com/sjounng/team-draft-lol/internal/domain"
	"github.com/sjounng/team-draft-lol/internal/logging"
	"github.com/sjounng/team-draft-lol/internal/metrics"
)

// LoggingMiddleware wraps the handler with request logging and request ID support.
func LoggingMiddleware(baseLogger *slog.Logger, next http.Handler) http.Handler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := sanitizeRequestID(r.Header.Get("X-Request-ID"))
		w.Header().Set("X-Request-ID", reqID)

		clientIP := r.RemoteAddr
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			clientIP = forwarded
		}

		logger := baseLogger.With(
			slog.String(logging.FieldRequestID, reqID),
			slog.String(logging.FieldMethod, r.Method),
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", clientIP),
		)

		ctx := logging.WithLogger(r.Context(), logger)
		ctx = withRequestID(ctx, reqID)
		r = r.WithContext(ctx)
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		logger.Info("request complete",
			slog.Int(logging.FieldStatusCode, ww.status),
			slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
		)
	})
}

// MetricsMiddleware records per-request counters and latency.
func MetricsMiddleware(recorder *metrics.Recorder, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		recorder.RecordHTTPRequest(r.Method, routePattern(r), ww.status, time.Since(start))
	})
}

// AuthMiddleware verifies the bearer token on every route except the
// health probes and the auth endpoints, and stores the authenticated
// profile ID on the request context.
func AuthMiddleware(tokens *auth.TokenIssuer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			writeUnauthorized(w)
			return
		}
		profileID, _, err := tokens.Verify(tokenString)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(withProfileID(r.Context(), profileID)))
	})
}

func isPublicPath(path string) bool {
	return path == "/health" || path == "/ready" || strings.HasPrefix(path, "/api/auth/")
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + domain.ErrInvalidCredential.Error() + `"}`))
}

// routePattern collapses ID segments so metric labels stay low
// cardinality.
func routePattern(r *http.Request) string {
	segments := strings.Split(r.URL.Path, "/")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		if _, err := uuid.FromString(seg); err == nil {
			segments[i] = "{id}"
			continue
		}
		if isNumeric(seg) {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

type profileIDKey struct{}

func withProfileID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, profileIDKey{}, id)
}

func profileIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(profileIDKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

type responseWriter struct {
	http.ResponseWriter
	status int
}
