package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(envDotEnvFile, filepath.Join(t.TempDir(), "missing.env"))

	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.Draft.PlayersPerTeam != defaultPlayersPerTeam || !cfg.Draft.BalanceByRating {
		t.Fatalf("unexpected draft defaults %+v", cfg.Draft)
	}
	if cfg.Draft.HasSeed {
		t.Fatalf("expected no seed by default")
	}
	if cfg.Extractor.Name != defaultExtractor {
		t.Fatalf("expected default extractor %s, got %s", defaultExtractor, cfg.Extractor.Name)
	}
	if cfg.Extractor.Timeout != defaultExtractorTimeout {
		t.Fatalf("expected default timeout %s, got %s", defaultExtractorTimeout, cfg.Extractor.Timeout)
	}
	if cfg.Extractor.Gemini.BaseURL != defaultGeminiBaseURL || cfg.Extractor.Gemini.Model != defaultGeminiModel {
		t.Fatalf("unexpected gemini defaults %+v", cfg.Extractor.Gemini)
	}
	if cfg.Extractor.Gemini.APIKey != "" {
		t.Fatalf("expected empty gemini api key by default, got %s", cfg.Extractor.Gemini.APIKey)
	}
	if cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("expected default service name, got %s", cfg.Metrics.ServiceName)
	}
	if cfg.Logging.Level != defaultLogLevel || cfg.Logging.Format != defaultLogFormat {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envDotEnvFile, filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv(envPort, "5000")
	t.Setenv(envPlayersPerTeam, "5")
	t.Setenv(envBalanceByRating, "false")
	t.Setenv(envDraftSeed, "42")
	t.Setenv(envExtractor, "gemini")
	t.Setenv(envExtractorTimeout, "3s")
	t.Setenv(envExtractorRate, "30")
	t.Setenv(envGeminiAPIKey, "secret-key")
	t.Setenv(envGeminiBaseURL, "http://example.com/api")
	t.Setenv(envGeminiModel, "custom")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.Draft.PlayersPerTeam != 5 || cfg.Draft.BalanceByRating {
		t.Fatalf("unexpected draft overrides %+v", cfg.Draft)
	}
	if !cfg.Draft.HasSeed || cfg.Draft.Seed != 42 {
		t.Fatalf("expected seed 42, got %+v", cfg.Draft)
	}
	if cfg.Extractor.Name != "gemini" || cfg.Extractor.Timeout != 3*time.Second {
		t.Fatalf("unexpected extractor overrides %+v", cfg.Extractor)
	}
	if cfg.Extractor.Interval() != 2*time.Second {
		t.Fatalf("expected 2s interval for 30/min, got %s", cfg.Extractor.Interval())
	}
	if cfg.Extractor.Gemini.APIKey != "secret-key" || cfg.Extractor.Gemini.BaseURL != "http://example.com/api" || cfg.Extractor.Gemini.Model != "custom" {
		t.Fatalf("unexpected gemini overrides %+v", cfg.Extractor.Gemini)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv(envDotEnvFile, filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv(envExtractorTimeout, "not-a-duration")
	t.Setenv(envPlayersPerTeam, "-3")
	t.Setenv(envDraftSeed, "abc")

	cfg := Load()

	if cfg.Extractor.Timeout != defaultExtractorTimeout {
		t.Fatalf("expected default timeout on invalid value, got %s", cfg.Extractor.Timeout)
	}
	if cfg.Draft.PlayersPerTeam != defaultPlayersPerTeam {
		t.Fatalf("expected default players per team on invalid value, got %d", cfg.Draft.PlayersPerTeam)
	}
	if cfg.Draft.HasSeed {
		t.Fatalf("expected invalid seed to be ignored")
	}
}

func TestLoadReadsDotEnvWithoutOverridingEnvironment(t *testing.T) {
	const fromFile = "TEAM_DRAFT_DOTENV_ONLY"
	path := filepath.Join(t.TempDir(), "test.env")
	content := "PORT=7000\n" + fromFile + "=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv(envDotEnvFile, path)
	t.Setenv(envPort, "6000")
	t.Cleanup(func() { os.Unsetenv(fromFile) })

	cfg := Load()

	if cfg.Port != "6000" {
		t.Fatalf("expected real environment to win, got %s", cfg.Port)
	}
	if os.Getenv(fromFile) != "from-file" {
		t.Fatalf("expected variable loaded from .env file")
	}
}

func TestLoadDotEnvIgnoresMissingFiles(t *testing.T) {
	if err := LoadDotEnv("", filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
}

func TestExtractorIntervalDisabled(t *testing.T) {
	if got := (ExtractorConfig{}).Interval(); got != 0 {
		t.Fatalf("expected zero interval, got %s", got)
	}
}

func TestLoadMetricsOTLPOnlyWithEndpoint(t *testing.T) {
	t.Setenv(envDotEnvFile, filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv(envOtelInsecure, "false")

	cfg := Load()
	if cfg.Metrics.OtlpEndpoint != "" || cfg.Metrics.OtlpInsecure {
		t.Fatalf("expected OTLP disabled without endpoint, got %+v", cfg.Metrics)
	}

	t.Setenv(envOtelEndpoint, "collector:4318")
	t.Setenv(envOtelInsecure, "")
	cfg = Load()
	if cfg.Metrics.OtlpEndpoint != "collector:4318" || !cfg.Metrics.OtlpInsecure {
		t.Fatalf("expected insecure OTLP export to collector, got %+v", cfg.Metrics)
	}
}
