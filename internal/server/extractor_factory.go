package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/team-draft-service/internal/config"
	"github.com/preston-bernstein/team-draft-service/internal/metrics"
	"github.com/preston-bernstein/team-draft-service/internal/providers"
	"github.com/preston-bernstein/team-draft-service/internal/providers/fixture"
	"github.com/preston-bernstein/team-draft-service/internal/providers/gemini"
)

// extractorFactory assembles the configured extractor with shared wrappers (rate limit + retry).
type extractorFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newExtractorFactory(logger *slog.Logger, metrics *metrics.Recorder) extractorFactory {
	return extractorFactory{logger: logger, metrics: metrics}
}

func (f extractorFactory) build(cfg config.Config) providers.Extractor {
	base, name := selectExtractor(cfg, f.logger)
	if name != fixture.Name {
		// Only remote extractors spend quota.
		base = providers.NewRateLimitedExtractor(base, cfg.Extractor.Interval(), f.logger)
	}
	return providers.NewRetryingExtractor(base, f.logger, f.metrics, name, cfg.Extractor.MaxAttempts, 0)
}

func selectExtractor(cfg config.Config, logger *slog.Logger) (providers.Extractor, string) {
	switch strings.ToLower(strings.TrimSpace(cfg.Extractor.Name)) {
	case fixture.Name, "":
		return fixture.New(), fixture.Name
	case gemini.Name:
		if cfg.Extractor.Gemini.APIKey == "" {
			if logger != nil {
				logger.Warn("gemini extractor selected without GEMINI_API_KEY, falling back to fixture")
			}
			return fixture.New(), fixture.Name
		}
		return gemini.NewClient(gemini.Config{
			BaseURL:    cfg.Extractor.Gemini.BaseURL,
			APIKey:     cfg.Extractor.Gemini.APIKey,
			Model:      cfg.Extractor.Gemini.Model,
			HTTPClient: &http.Client{Timeout: cfg.Extractor.Timeout},
		}), gemini.Name
	default:
		if logger != nil {
			logger.Warn("unknown extractor, falling back to fixture", slog.String("extractor", cfg.Extractor.Name))
		}
		return fixture.New(), fixture.Name
	}
}
