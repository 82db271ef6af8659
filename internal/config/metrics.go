package config

// MetricsConfig controls the Prometheus endpoint and the optional OTLP push exporter.
type MetricsConfig struct {
	Enabled     bool
	Port        string
	ServiceName string
	// OtlpEndpoint enables OTLP export when set; OtlpInsecure selects plain HTTP.
	OtlpEndpoint string
	OtlpInsecure bool
}

func loadMetrics() MetricsConfig {
	cfg := MetricsConfig{
		Enabled:     boolEnvOrDefault(envMetricsOn, true),
		Port:        envOrDefault(envMetricsPort, defaultMetricsPort),
		ServiceName: envOrDefault(envOtelService, defaultServiceName),
	}
	if endpoint, ok := lookup(envOtelEndpoint); ok {
		cfg.OtlpEndpoint = endpoint
		cfg.OtlpInsecure = boolEnvOrDefault(envOtelInsecure, true)
	}
	return cfg
}
