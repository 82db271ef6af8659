package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/team-draft-service/internal/metrics"
)

type flakeyExtractor struct {
	failures int
	err      error
	calls    int
}

func (f *flakeyExtractor) ExtractNames(ctx context.Context, text string) ([]string, error) {
	_ = ctx
	_ = text
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return nil, f.err
		}
		return nil, &ExternalServiceError{Provider: "flakey", StatusCode: 503}
	}
	return []string{"Ana"}, nil
}

func noWait(rp Extractor) *retryingExtractor {
	r := rp.(*retryingExtractor)
	r.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return r
}

func TestRetryingExtractorRetriesAndSucceeds(t *testing.T) {
	fe := &flakeyExtractor{failures: 2}
	rp := noWait(NewRetryingExtractor(fe, nil, metrics.NewRecorder(), "flakey", 3, time.Millisecond))

	names, err := rp.ExtractNames(context.Background(), "Ana")
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if len(names) != 1 || names[0] != "Ana" {
		t.Fatalf("unexpected names %+v", names)
	}
	if fe.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", fe.calls)
	}
}

func TestRetryingExtractorStopsAfterMaxAttempts(t *testing.T) {
	fe := &flakeyExtractor{failures: 5}
	rec := metrics.NewRecorder()
	rp := noWait(NewRetryingExtractor(fe, nil, rec, "flakey", 2, time.Millisecond))

	_, err := rp.ExtractNames(context.Background(), "Ana")
	if _, ok := AsExternalServiceError(err); !ok {
		t.Fatalf("expected external service error after retries, got %v", err)
	}
	if fe.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", fe.calls)
	}
	if got := rec.ExtractorErrors("flakey"); got != 2 {
		t.Fatalf("expected 2 recorded errors, got %d", got)
	}
}

func TestRetryingExtractorDoesNotRetryPermanentErrors(t *testing.T) {
	fe := &flakeyExtractor{failures: 5, err: ErrNoNamesFound}
	rp := noWait(NewRetryingExtractor(fe, nil, metrics.NewRecorder(), "flakey", 3, time.Millisecond))

	_, err := rp.ExtractNames(context.Background(), "???")
	if !errors.Is(err, ErrNoNamesFound) {
		t.Fatalf("expected ErrNoNamesFound, got %v", err)
	}
	if fe.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", fe.calls)
	}
}

func TestRetryingExtractorRespectsContextCancel(t *testing.T) {
	fe := &flakeyExtractor{failures: 5}
	rp := NewRetryingExtractor(fe, nil, metrics.NewRecorder(), "flakey", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rp.ExtractNames(ctx, "Ana")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestRetryingExtractorRecordsRateLimitMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	fe := &flakeyExtractor{failures: 1, err: &RateLimitError{Provider: "test", StatusCode: 429, RetryAfter: time.Millisecond}}
	rp := noWait(NewRetryingExtractor(fe, nil, rec, "rl", 2, time.Millisecond))

	names, err := rp.ExtractNames(context.Background(), "Ana")
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if len(names) != 1 {
		t.Fatalf("unexpected names %+v", names)
	}
	if got := rec.RateLimitHits("rl"); got != 1 {
		t.Fatalf("expected 1 rate limit hit, got %d", got)
	}
	if got := rec.ExtractorCalls("rl"); got != 2 {
		t.Fatalf("expected 2 extractor calls, got %d", got)
	}
	if got := rec.LastRetryAfter("rl"); got != time.Millisecond {
		t.Fatalf("expected retry-after to be recorded, got %s", got)
	}
}

func TestRetryAfterBackOffPrefersUpstreamDelay(t *testing.T) {
	b := &retryAfterBackOff{next: backoff.NewConstantBackOff(50 * time.Millisecond), retryAfterFn: retryAfter}

	b.last = &RateLimitError{RetryAfter: 3 * time.Second}
	if got := b.NextBackOff(); got != 3*time.Second {
		t.Fatalf("expected retry-after delay, got %s", got)
	}

	b.last = errors.New("boom")
	if got := b.NextBackOff(); got != 50*time.Millisecond {
		t.Fatalf("expected computed delay, got %s", got)
	}

	b.Reset()
	if b.last != nil {
		t.Fatalf("expected reset to clear last error")
	}

	stopped := &retryAfterBackOff{next: &backoff.StopBackOff{}, retryAfterFn: retryAfter, last: &RateLimitError{RetryAfter: time.Second}}
	if got := stopped.NextBackOff(); got != backoff.Stop {
		t.Fatalf("expected stop to win over retry-after, got %s", got)
	}
}

func TestNewRetryingExtractorWithNilInnerSetsFallbackName(t *testing.T) {
	rp := NewRetryingExtractor(nil, nil, metrics.NewRecorder(), "", 0, 0).(*retryingExtractor)
	if rp.name != "extractor" {
		t.Fatalf("expected fallback extractor name, got %s", rp.name)
	}
	if rp.maxAttempts != defaultRetryAttempts {
		t.Fatalf("expected default attempts, got %d", rp.maxAttempts)
	}
	if _, err := rp.ExtractNames(context.Background(), "Ana"); !errors.Is(err, ErrExtractorUnavailable) {
		t.Fatalf("expected ErrExtractorUnavailable, got %v", err)
	}
}
