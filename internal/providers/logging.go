package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/team-draft-service/internal/logging"
)

// extractorLogger prefers the request-scoped logger so retries share the request id.
// Returns nil when neither ctx nor fallback carries one.
func extractorLogger(ctx context.Context, fallback *slog.Logger, extractor string) *slog.Logger {
	logger := logging.FromContext(ctx, fallback)
	if logger == nil {
		return nil
	}
	return logger.With(slog.String(logging.FieldExtractor, extractor))
}
