package config

import "time"

// ExtractorConfig controls which name extractor backs imports and how it is throttled.
type ExtractorConfig struct {
	Name          string // fixture or gemini
	Timeout       time.Duration
	RatePerMinute int
	MaxAttempts   int
	Gemini        GeminiConfig
}

// GeminiConfig controls how we talk to the Gemini API.
type GeminiConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// Interval converts the per-minute quota into the spacing between calls.
func (c ExtractorConfig) Interval() time.Duration {
	if c.RatePerMinute <= 0 {
		return 0
	}
	return time.Minute / time.Duration(c.RatePerMinute)
}

func loadExtractor() ExtractorConfig {
	return ExtractorConfig{
		Name:          envOrDefault(envExtractor, defaultExtractor),
		Timeout:       durationEnvOrDefault(envExtractorTimeout, defaultExtractorTimeout),
		RatePerMinute: intEnvOrDefault(envExtractorRate, defaultExtractorRate),
		MaxAttempts:   intEnvOrDefault(envExtractorAttempts, defaultExtractorAttempts),
		Gemini: GeminiConfig{
			BaseURL: envOrDefault(envGeminiBaseURL, defaultGeminiBaseURL),
			APIKey:  envOrDefault(envGeminiAPIKey, ""),
			Model:   envOrDefault(envGeminiModel, defaultGeminiModel),
		},
	}
}
