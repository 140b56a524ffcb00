package config

// DatabaseConfig controls the Postgres connection. An empty URL makes
// the server run against the in-memory store instead.
type DatabaseConfig struct {
	URL string
}

func loadDatabase() DatabaseConfig {
	return DatabaseConfig{
		URL: envOrDefault(envDatabaseURL, ""),
	}
}

// AuthConfig controls token issuance.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  Duration
}

func loadAuth() AuthConfig {
	return AuthConfig{
		JWTSecret: envOrDefault(envJWTSecret, ""),
		TokenTTL:  durationEnvOrDefault(envTokenTTL, defaultTokenTTL),
	}
}

// DraftConfig controls the team generation component.
type DraftConfig struct {
	CacheTTL Duration
}

func loadDraft() DraftConfig {
	return DraftConfig{
		CacheTTL: durationEnvOrDefault(envDraftCacheTTL, defaultDraftCacheTTL),
	}
}
