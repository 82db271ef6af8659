package providers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/team-draft-service/internal/logging"
	"github.com/preston-bernstein/team-draft-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
)

// retryingExtractor wraps an Extractor with exponential backoff. Rate limit responses wait for
// the upstream Retry-After instead of the computed interval.
type retryingExtractor struct {
	inner        Extractor
	logger       *slog.Logger
	metrics      *metrics.Recorder
	name         string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
	retryAfterFn func(error) time.Duration
}

// NewRetryingExtractor wraps the given extractor with retries. If maxAttempts/initial are <= 0, defaults are used.
func NewRetryingExtractor(inner Extractor, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, initial time.Duration) Extractor {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	if name == "" {
		name = extractorName(inner)
	}
	return &retryingExtractor{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		name:        name,
		maxAttempts: maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = maxBackoff
			b.MaxElapsedTime = 0
			return b
		},
		retryAfterFn: retryAfter,
	}
}

func (r *retryingExtractor) ExtractNames(ctx context.Context, text string) ([]string, error) {
	if r.inner == nil {
		return nil, ErrExtractorUnavailable
	}

	var names []string
	policy := &retryAfterBackOff{next: r.newBackOff(), retryAfterFn: r.retryAfterFn}
	attempt := 0

	op := func() error {
		attempt++
		start := time.Now()
		out, err := r.inner.ExtractNames(ctx, text)
		r.metrics.RecordExtractorAttempt(r.name, time.Since(start), err)
		if err == nil {
			names = out
			return nil
		}
		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.name, rlErr.RetryAfter)
		}
		if !Retryable(err) {
			return backoff.Permanent(err)
		}
		policy.last = err
		return err
	}
	notify := func(err error, delay time.Duration) {
		logging.Warn(extractorLogger(ctx, r.logger, r.name), "extractor retry",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", r.maxAttempts),
			slog.Duration("delay", delay),
			logging.Err(err),
		)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx)
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logging.Warn(extractorLogger(ctx, r.logger, r.name), "extractor failed",
			slog.Int("attempts", attempt),
			logging.Err(err),
		)
		return nil, err
	}
	return names, nil
}

// retryAfterBackOff defers to the upstream Retry-After when the last error carried one.
type retryAfterBackOff struct {
	next         backoff.BackOff
	retryAfterFn func(error) time.Duration
	last         error
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	computed := b.next.NextBackOff()
	if computed == backoff.Stop {
		return backoff.Stop
	}
	if b.retryAfterFn != nil {
		if d := b.retryAfterFn(b.last); d > 0 {
			return d
		}
	}
	return computed
}

func (b *retryAfterBackOff) Reset() {
	b.last = nil
	b.next.Reset()
}

func retryAfter(err error) time.Duration {
	if rlErr, ok := AsRateLimitError(err); ok {
		return rlErr.RetryAfter
	}
	return 0
}

// extractorName derives a lower-cased name from the concrete type when none is configured.
func extractorName(ex Extractor) string {
	if ex == nil {
		return "extractor"
	}
	return strings.ToLower(fmt.Sprintf("%T", ex))
}
