package config

import "time"

const (
	envPort          = "PORT"
	envDatabaseURL   = "DATABASE_URL"
	envJWTSecret     = "JWT_SECRET"
	envTokenTTL      = "TOKEN_TTL"
	envDraftCacheTTL = "DRAFT_CACHE_TTL"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort        = "4000"
	defaultMetricsPort = "9090"
	defaultTokenTTL    = 24 * time.Hour
	// Ranked sets for a roster are cheap to recompute; an hour of reroll
	// traffic is the window worth keeping.
	defaultDraftCacheTTL = time.Hour
)
