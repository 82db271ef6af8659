package server

import (
	"time"

	"github.com/preston-bernstein/team-draft-service/internal/config"
)

const (
	readTimeout       = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
	// Room left after the extractor deadline for writing the response.
	writeSlack = 5 * time.Second
	// Floor for the write deadline when no extractor timeout is configured.
	minWriteTimeout = 10 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second

// writeTimeout must outlast a full retried extraction, or imports get cut off mid-response.
func writeTimeout(cfg config.Config) time.Duration {
	attempts := cfg.Extractor.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	d := time.Duration(attempts)*cfg.Extractor.Timeout + writeSlack
	if d < minWriteTimeout {
		return minWriteTimeout
	}
	return d
}
