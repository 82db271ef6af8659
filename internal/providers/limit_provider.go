package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/team-draft-service/internal/logging"
)

// rateLimitedExtractor wraps an Extractor and enforces a minimum interval between upstream calls.
type rateLimitedExtractor struct {
	next    Extractor
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedExtractor returns an Extractor that allows one call per interval with a burst of one.
// Calls block until a token is available or the context ends.
func NewRateLimitedExtractor(next Extractor, interval time.Duration, logger *slog.Logger) Extractor {
	if interval <= 0 {
		interval = time.Second
	}
	return &rateLimitedExtractor{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		logger:  logger,
	}
}

func (p *rateLimitedExtractor) ExtractNames(ctx context.Context, text string) ([]string, error) {
	if p == nil || p.next == nil {
		return nil, ErrExtractorUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logging.Warn(extractorLogger(ctx, p.logger, "rate-limited"), "rate-limited extract canceled", logging.Err(err))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return p.next.ExtractNames(ctx, text)
}
