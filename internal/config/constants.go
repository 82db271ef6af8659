package config

import "time"

const (
	envPort                = "PORT"
	envLogLevel            = "LOG_LEVEL"
	envLogFormat           = "LOG_FORMAT"
	envMetricsPort         = "METRICS_PORT"
	envMetricsOn           = "METRICS_ENABLED"
	envOtelEndpoint        = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService         = "OTEL_SERVICE_NAME"
	envOtelInsecure        = "OTEL_EXPORTER_OTLP_INSECURE"
	envPlayersPerTeam      = "DEFAULT_PLAYERS_PER_TEAM"
	envBalanceByRating     = "DEFAULT_BALANCE_BY_RATING"
	envDraftSeed           = "DRAFT_SEED"
	envExtractor           = "EXTRACTOR"
	envExtractorTimeout    = "EXTRACTOR_TIMEOUT"
	envExtractorRate       = "EXTRACTOR_RATE_PER_MINUTE"
	envExtractorAttempts   = "EXTRACTOR_MAX_ATTEMPTS"
	envGeminiAPIKey        = "GEMINI_API_KEY"
	envGeminiBaseURL       = "GEMINI_BASE_URL"
	envGeminiModel         = "GEMINI_MODEL"
	envDotEnvFile          = "DOTENV_FILE"
	defaultDotEnvFile      = ".env"
	defaultPort            = "4000"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultMetricsPort     = "9090"
	defaultServiceName     = "team-draft-service"
	defaultPlayersPerTeam  = 2
	defaultBalanceByRating = true
	defaultExtractor       = "fixture"
	defaultGeminiBaseURL   = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel     = "gemini-2.0-flash"
	// Free-tier Gemini quotas sit around 15 requests per minute.
	defaultExtractorRate     = 15
	defaultExtractorAttempts = 3
	defaultExtractorTimeout  = 20 * time.Second
)
