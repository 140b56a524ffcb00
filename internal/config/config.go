package config

// Config holds runtime configuration for the server.
type Config struct {
	Port     string
	Database DatabaseConfig
	Auth     AuthConfig
	Draft    DraftConfig
	Scoring  ScoringConfig
	Metrics  MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:     envOrDefault(envPort, defaultPort),
		Database: loadDatabase(),
		Auth:     loadAuth(),
		Draft:    loadDraft(),
		Scoring:  loadScoring(),
		Metrics:  loadMetrics(),
	}
}
