package testutil

import (
	"context"
	"net/http"
	"sync"
)

// ServeMode scripts how StubHTTPServer.ListenAndServe behaves.
type ServeMode int

const (
	// ServeReturnsImmediately returns ListenErr (nil by default) right away.
	ServeReturnsImmediately ServeMode = iota
	// ServeUntilShutdown blocks until Shutdown, then returns http.ErrServerClosed like net/http.
	ServeUntilShutdown
)

// StubHTTPServer stands in for the server package's http.Server wrapper. Counters are guarded
// because Server calls ListenAndServe from its own goroutine.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	Mode        ServeMode
	ListenErr   error
	ShutdownErr error
	// HangShutdown makes Shutdown wait for its context, to exercise shutdown timeouts.
	HangShutdown bool

	mu            sync.Mutex
	listenCalls   int
	shutdownCalls int
	closeOnce     sync.Once
	closed        chan struct{}
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.mu.Lock()
	s.listenCalls++
	closed := s.closedChan()
	s.mu.Unlock()

	if s.Mode == ServeUntilShutdown {
		<-closed
		return http.ErrServerClosed
	}
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shutdownCalls++
	closed := s.closedChan()
	s.mu.Unlock()
	s.closeOnce.Do(func() { close(closed) })

	if s.HangShutdown {
		<-ctx.Done()
		return ctx.Err()
	}
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	return s.HandlerVal
}

// ListenCalls reports how many times ListenAndServe ran.
func (s *StubHTTPServer) ListenCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listenCalls
}

// ShutdownCalls reports how many times Shutdown ran.
func (s *StubHTTPServer) ShutdownCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdownCalls
}

// closedChan must be called with mu held.
func (s *StubHTTPServer) closedChan() chan struct{} {
	if s.closed == nil {
		s.closed = make(chan struct{})
	}
	return s.closed
}
