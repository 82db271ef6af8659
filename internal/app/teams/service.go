package teams

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/team-draft-service/internal/domain/players"
	"github.com/preston-bernstein/team-draft-service/internal/domain/teams"
	"github.com/preston-bernstein/team-draft-service/internal/draft"
	"github.com/preston-bernstein/team-draft-service/internal/export"
	"github.com/preston-bernstein/team-draft-service/internal/logging"
	"github.com/preston-bernstein/team-draft-service/internal/metrics"
	"github.com/preston-bernstein/team-draft-service/internal/store"
)

// Allocator splits a roster into teams.
type Allocator interface {
	Allocate(roster []players.Player, playersPerTeam int, balanceByRating bool) (teams.Result, error)
}

// Store defines the roster reads and generation writes the service needs.
type Store interface {
	ListPlayers() []players.Player
	SetGeneration(store.Generation)
	ClearGeneration()
	Generation() store.Generation
}

// Run is the outcome of one allocation plus the settings it ran with.
type Run struct {
	ID              string
	PlayersPerTeam  int
	BalanceByRating bool
	teams.Result
}

// Service generates teams from the current roster and keeps the latest result.
type Service struct {
	store     Store
	allocator Allocator
	metrics   *metrics.Recorder
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// NewService constructs a Service. recorder and logger may be nil.
func NewService(store Store, allocator Allocator, recorder *metrics.Recorder, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		allocator: allocator,
		metrics:   recorder,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Generate allocates the current roster. Previously generated teams are discarded before the run,
// so a failed run leaves no teams behind.
func (s *Service) Generate(ctx context.Context, playersPerTeam int, balanceByRating bool) (Run, error) {
	runID := s.newID()
	logger := logging.FromContext(ctx, s.logger)
	if logger != nil {
		logger = logger.With(
			slog.String(logging.FieldRunID, runID),
			slog.Int(logging.FieldPerTeam, playersPerTeam),
			slog.Bool(logging.FieldBalanced, balanceByRating),
		)
	}

	s.store.ClearGeneration()
	roster := s.store.ListPlayers()

	start := s.now()
	result, err := s.allocator.Allocate(roster, playersPerTeam, balanceByRating)
	duration := s.now().Sub(start)
	s.metrics.RecordAllocation(len(roster), len(result.Teams), balanceByRating, duration, err)
	if err != nil {
		logging.Warn(logger, "allocation failed", logging.Err(err), logging.FieldPlayers, len(roster))
		return Run{}, err
	}

	s.store.SetGeneration(store.Generation{
		RunID:           runID,
		PlayersPerTeam:  playersPerTeam,
		BalanceByRating: balanceByRating,
		Teams:           result.Teams,
	})
	logging.Info(logger, "teams generated",
		logging.FieldPlayers, len(roster),
		logging.FieldTeams, len(result.Teams),
		logging.FieldDurationMS, float64(duration.Microseconds())/1000,
	)

	return Run{
		ID:              runID,
		PlayersPerTeam:  playersPerTeam,
		BalanceByRating: balanceByRating,
		Result:          result,
	}, nil
}

// Current returns the latest generated teams. Unassigned players are recomputed against the
// roster as it is now, so players added after the run show up there.
func (s *Service) Current() Run {
	gen := s.store.Generation()
	generated := gen.Teams
	if generated == nil {
		generated = []teams.Team{}
	}
	return Run{
		ID:              gen.RunID,
		PlayersPerTeam:  gen.PlayersPerTeam,
		BalanceByRating: gen.BalanceByRating,
		Result: teams.Result{
			Teams:      generated,
			Unassigned: draft.Unassigned(s.store.ListPlayers(), generated),
		},
	}
}

// Export renders the latest teams as shareable text. Ratings are only shown for runs that
// balanced by rating, since unbalanced runs store a uniform rating.
func (s *Service) Export(opts export.Options) string {
	gen := s.store.Generation()
	opts.ShowRatings = opts.ShowRatings && gen.BalanceByRating
	return export.Format(gen.Teams, opts)
}
