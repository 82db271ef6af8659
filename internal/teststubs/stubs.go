package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/team-draft-service/internal/domain/players"
	"github.com/preston-bernstein/team-draft-service/internal/domain/teams"
)

// StubExtractor is a test double for providers.Extractor.
type StubExtractor struct {
	Names  []string
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}

	mu    sync.Mutex
	texts []string
}

// ExtractNames returns configured names and error while tracking calls and inputs.
func (s *StubExtractor) ExtractNames(ctx context.Context, text string) ([]string, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	s.mu.Lock()
	s.texts = append(s.texts, text)
	s.mu.Unlock()
	return s.Names, s.Err
}

// Texts returns the inputs seen so far.
func (s *StubExtractor) Texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}

// SequenceExtractor returns errors from Errs in order, then Names once they run out.
type SequenceExtractor struct {
	Names []string
	Errs  []error
	Calls atomic.Int32
}

// ExtractNames pops the next scripted error.
func (s *SequenceExtractor) ExtractNames(ctx context.Context, text string) ([]string, error) {
	_ = ctx
	_ = text
	n := int(s.Calls.Add(1))
	if n <= len(s.Errs) && s.Errs[n-1] != nil {
		return nil, s.Errs[n-1]
	}
	return s.Names, nil
}

// StubAllocator is a test double for the teams service allocator.
type StubAllocator struct {
	Result teams.Result
	Err    error
	Calls  atomic.Int32

	LastPerTeam  int
	LastBalanced bool
	LastRoster   []players.Player
}

// Allocate records its arguments and returns the configured result.
func (s *StubAllocator) Allocate(roster []players.Player, playersPerTeam int, balanceByRating bool) (teams.Result, error) {
	s.Calls.Add(1)
	s.LastRoster = roster
	s.LastPerTeam = playersPerTeam
	s.LastBalanced = balanceByRating
	return s.Result, s.Err
}
