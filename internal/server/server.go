package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/team-draft-service/internal/app/players"
	"github.com/preston-bernstein/team-draft-service/internal/app/teams"
	"github.com/preston-bernstein/team-draft-service/internal/config"
	"github.com/preston-bernstein/team-draft-service/internal/draft"
	httpserver "github.com/preston-bernstein/team-draft-service/internal/http"
	"github.com/preston-bernstein/team-draft-service/internal/http/handlers"
	"github.com/preston-bernstein/team-draft-service/internal/http/middleware"
	"github.com/preston-bernstein/team-draft-service/internal/logging"
	"github.com/preston-bernstein/team-draft-service/internal/metrics"
	"github.com/preston-bernstein/team-draft-service/internal/providers"
	"github.com/preston-bernstein/team-draft-service/internal/store"
)

var metricsSetup = metrics.Setup

// Server owns the roster store, the draft services and the listeners exposing them.
type Server struct {
	cfg            config.Config
	logger         *slog.Logger
	metrics        *metrics.Recorder
	store          *store.MemoryStore
	teamsService   *teams.Service
	playersService *players.Service
	httpServer     httpServer
	metricsServer  httpServer
	metricsStop    func(context.Context) error
}

// New wires the extractor named in cfg and an allocator seeded from cfg.Draft.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithExtractor(cfg config.Config, logger *slog.Logger, extractor providers.Extractor) *Server {
	return newServerWithMetrics(cfg, logger, extractor, nil)
}

// newServerWithMetrics builds the full graph. Nil extractor or recorder fall back to cfg.
func newServerWithMetrics(cfg config.Config, logger *slog.Logger, extractor providers.Extractor, recorder *metrics.Recorder) *Server {
	s := &Server{cfg: cfg, logger: logger}
	s.metrics, s.metricsServer, s.metricsStop = buildMetrics(cfg, logger, recorder)

	if extractor == nil {
		extractor = newExtractorFactory(logger, s.metrics).build(cfg)
	}
	s.store = store.NewMemoryStore()
	s.playersService = players.NewService(s.store, extractor, logger)
	s.teamsService = teams.NewService(s.store, newAllocator(cfg.Draft), s.metrics, logger)
	s.httpServer = s.buildHTTPServer()
	return s
}

// newServerWithDeps skips service wiring; shutdown tests only need the listener.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer) *Server {
	return &Server{cfg: cfg, logger: logger, httpServer: httpSrv}
}

func newAllocator(cfg config.DraftConfig) *draft.Allocator {
	if !cfg.HasSeed {
		return draft.New(nil)
	}
	return draft.NewSeeded(cfg.Seed)
}

func (s *Server) buildHTTPServer() httpServer {
	logger := s.logger
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	defaults := handlers.Defaults{
		PlayersPerTeam:  s.cfg.Draft.PlayersPerTeam,
		BalanceByRating: s.cfg.Draft.BalanceByRating,
	}
	router := httpserver.NewRouter(handlers.NewHandler(s.playersService, s.teamsService, defaults, s.logger))

	return netHTTPServer{srv: &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           middleware.LoggingMiddleware(logger, s.metrics, router),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout(s.cfg),
		IdleTimeout:       idleTimeout,
	}}
}

// Run blocks until ctx is done. A listener failure calls stop so Run can unwind.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")
	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

type shutdownStep struct {
	msg   string
	level slog.Level
	fn    func(context.Context) error
}

// shutdownSteps lists teardown in order: telemetry first, the API listener last.
func (s *Server) shutdownSteps() []shutdownStep {
	var steps []shutdownStep
	if s.metricsStop != nil {
		steps = append(steps, shutdownStep{"metrics shutdown failed", slog.LevelWarn, s.metricsStop})
	}
	if s.metricsServer != nil {
		steps = append(steps, shutdownStep{"metrics server shutdown failed", slog.LevelWarn, s.metricsServer.Shutdown})
	}
	return append(steps, shutdownStep{"graceful shutdown failed", slog.LevelError, s.httpServer.Shutdown})
}

func (s *Server) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, step := range s.shutdownSteps() {
		err := step.fn(ctx)
		switch {
		case err == nil:
		case step.level >= slog.LevelError:
			logging.Error(s.logger, step.msg, err)
		default:
			logging.Warn(s.logger, step.msg, logging.Err(err))
		}
	}
	logging.Info(s.logger, "shutdown complete")
}

// buildMetrics returns an injected recorder untouched. Setup failures degrade to
// an in-process recorder so the API still serves.
func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	telemetry := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}
	rec, handler, shutdown, err := metricsSetup(context.Background(), telemetry)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.Err(err))
		return metrics.NewRecorder(), nil, nil
	}
	if handler == nil || !telemetry.Enabled {
		return rec, nil, shutdown
	}

	return rec, netHTTPServer{srv: &http.Server{
		Addr:              ":" + telemetry.Port,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}}, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		err := srv.ListenAndServe()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
		logging.Warn(logger, name+" server failed", logging.Err(err))
		if onError != nil {
			onError(err)
		}
	}()
}

// Handler exposes the wrapped API handler for in-process requests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
