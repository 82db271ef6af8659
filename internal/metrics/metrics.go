package metrics

import (
	"sync"
	"time"
)

type extractorStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type allocationStats struct {
	runs        int
	failures    int
	lastTeams   int
	lastPlayers int
	lastLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about extractor calls and allocation runs,
// mirroring them to OpenTelemetry instruments when telemetry is enabled.
type Recorder struct {
	mu          sync.Mutex
	stats       map[string]*extractorStats
	allocations allocationStats
	requests    map[string]int
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:    make(map[string]*extractorStats),
		requests: make(map[string]int),
		otel:     otel,
	}
}

// RecordExtractorAttempt increments counters for an extractor call and stores the last observed latency.
func (r *Recorder) RecordExtractorAttempt(extractor string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats := r.ensureStats(extractor)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordExtractorAttempt(extractor, duration, err)
	}
}

// RecordRateLimit tracks that an extractor response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(extractor string, retryAfter time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats := r.ensureStats(extractor)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRateLimit(extractor, retryAfter)
	}
}

// RecordAllocation tracks one allocation run: its size, latency and whether it failed.
func (r *Recorder) RecordAllocation(playerCount, teamCount int, balanced bool, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.allocations.runs++
	r.allocations.lastLatency = duration
	if err != nil {
		r.allocations.failures++
	} else {
		r.allocations.lastTeams = teamCount
		r.allocations.lastPlayers = playerCount
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordAllocation(playerCount, teamCount, balanced, duration, err)
	}
}

// ExtractorCalls returns the total attempts recorded for an extractor.
func (r *Recorder) ExtractorCalls(extractor string) int {
	return r.Snapshot(extractor).Calls
}

// ExtractorErrors returns the total failed attempts recorded for an extractor.
func (r *Recorder) ExtractorErrors(extractor string) int {
	return r.Snapshot(extractor).Errors
}

// RateLimitHits returns the number of rate limit events seen for an extractor.
func (r *Recorder) RateLimitHits(extractor string) int {
	return r.Snapshot(extractor).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for an extractor.
func (r *Recorder) LastRetryAfter(extractor string) time.Duration {
	return r.Snapshot(extractor).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for an extractor call.
func (r *Recorder) LastCallLatency(extractor string) time.Duration {
	return r.Snapshot(extractor).LastCallLatency
}

// Snapshot returns a copy of the current stats for the extractor.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(extractor string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.stats[extractor]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// AllocationSnapshot summarizes allocation runs seen so far.
type AllocationSnapshot struct {
	Runs        int
	Failures    int
	LastTeams   int
	LastPlayers int
	LastLatency time.Duration
}

// Allocations returns a copy of the allocation stats.
func (r *Recorder) Allocations() AllocationSnapshot {
	if r == nil {
		return AllocationSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return AllocationSnapshot{
		Runs:        r.allocations.runs,
		Failures:    r.allocations.failures,
		LastTeams:   r.allocations.lastTeams,
		LastPlayers: r.allocations.lastPlayers,
		LastLatency: r.allocations.lastLatency,
	}
}

// RecordHTTPRequest counts a served request per method and route label.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.requests[method+" "+path]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordHTTPRequest(method, path, status, duration)
	}
}

// HTTPRequests returns how many requests were recorded for method and route label.
func (r *Recorder) HTTPRequests(method, path string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[method+" "+path]
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(extractor string) *extractorStats {
	stats, ok := r.stats[extractor]
	if !ok {
		stats = &extractorStats{}
		r.stats[extractor] = stats
	}
	return stats
}
