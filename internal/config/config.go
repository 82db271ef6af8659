package config

// Config holds runtime configuration for the server and CLI.
type Config struct {
	Port      string
	Logging   LoggingConfig
	Draft     DraftConfig
	Extractor ExtractorConfig
	Metrics   MetricsConfig
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults. Variables from a
// .env file are applied first without overriding the real environment.
func Load() Config {
	_ = LoadDotEnv(envOrDefault(envDotEnvFile, defaultDotEnvFile))

	return Config{
		Port: envOrDefault(envPort, defaultPort),
		Logging: LoggingConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Draft:     loadDraft(),
		Extractor: loadExtractor(),
		Metrics:   loadMetrics(),
	}
}
