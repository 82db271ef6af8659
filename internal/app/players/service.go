package players

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/team-draft-service/internal/domain/players"
	"github.com/preston-bernstein/team-draft-service/internal/draft"
	"github.com/preston-bernstein/team-draft-service/internal/logging"
	"github.com/preston-bernstein/team-draft-service/internal/providers"
)

// MaxNameLength bounds player names after trimming.
const MaxNameLength = 60

// ErrPlayerNotFound is returned when removing an id that is not on the roster.
var ErrPlayerNotFound = errors.New("player not found")

// Store defines the contract for persisting and retrieving the roster.
type Store interface {
	AddPlayers([]players.Draft) []players.Player
	ListPlayers() []players.Player
	RemovePlayer(id int) bool
	ClearPlayers()
}

// Service coordinates roster operations using a Store and an optional name Extractor.
type Service struct {
	store     Store
	extractor providers.Extractor
	logger    *slog.Logger
}

// NewService constructs a Service. extractor may be nil, in which case imports fail with
// providers.ErrExtractorUnavailable.
func NewService(store Store, extractor providers.Extractor, logger *slog.Logger) *Service {
	return &Service{store: store, extractor: extractor, logger: logger}
}

// Players returns the current roster in insertion order.
func (s *Service) Players() []players.Player {
	return s.store.ListPlayers()
}

// Add validates and appends a single player. When balanceByRating is off the rating is ignored
// and the player is stored with players.UniformRating.
func (s *Service) Add(name string, rating float64, isGoalkeeper, balanceByRating bool) (players.Player, error) {
	added, err := s.AddBatch([]players.Draft{{Name: name, Rating: rating, IsGoalkeeper: isGoalkeeper}}, balanceByRating)
	if err != nil {
		return players.Player{}, err
	}
	return added[0], nil
}

// AddBatch validates every draft before adding any of them.
func (s *Service) AddBatch(drafts []players.Draft, balanceByRating bool) ([]players.Player, error) {
	if len(drafts) == 0 {
		return nil, fmt.Errorf("%w: no players to add", draft.ErrInvalidInput)
	}
	clean := make([]players.Draft, 0, len(drafts))
	for i, d := range drafts {
		normalized, err := normalizeDraft(d, balanceByRating)
		if err != nil {
			if len(drafts) > 1 {
				return nil, fmt.Errorf("player %d: %w", i+1, err)
			}
			return nil, err
		}
		clean = append(clean, normalized)
	}

	added := s.store.AddPlayers(clean)
	logging.Info(s.logger, "players added", logging.FieldCount, len(added), logging.FieldBalanced, balanceByRating)
	return added, nil
}

// Remove deletes a player by id.
func (s *Service) Remove(id int) error {
	if !s.store.RemovePlayer(id) {
		return fmt.Errorf("%w: id %d", ErrPlayerNotFound, id)
	}
	logging.Info(s.logger, "player removed", "player_id", id)
	return nil
}

// Clear empties the roster. Generated teams are discarded along with it.
func (s *Service) Clear() {
	s.store.ClearPlayers()
	logging.Info(s.logger, "roster cleared")
}

// ExtractNames runs the configured extractor over pasted text without touching the roster, so
// callers can review names before importing them.
func (s *Service) ExtractNames(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %w", draft.ErrInvalidInput, providers.ErrEmptyText)
	}
	if s.extractor == nil {
		return nil, providers.ErrExtractorUnavailable
	}
	names, err := s.extractor.ExtractNames(ctx, text)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "name extraction failed", logging.Err(err))
		return nil, err
	}
	return names, nil
}

// Import extracts names from text and adds each as a player with the default rating.
func (s *Service) Import(ctx context.Context, text string, balanceByRating bool) ([]players.Player, error) {
	names, err := s.ExtractNames(ctx, text)
	if err != nil {
		return nil, err
	}
	drafts := make([]players.Draft, 0, len(names))
	for _, name := range names {
		drafts = append(drafts, players.Draft{Name: name, Rating: players.DefaultRating})
	}
	return s.AddBatch(drafts, balanceByRating)
}

func normalizeDraft(d players.Draft, balanceByRating bool) (players.Draft, error) {
	name := strings.Join(strings.Fields(d.Name), " ")
	if name == "" {
		return players.Draft{}, fmt.Errorf("%w: player name is required", draft.ErrInvalidInput)
	}
	if len([]rune(name)) > MaxNameLength {
		return players.Draft{}, fmt.Errorf("%w: player name longer than %d characters", draft.ErrInvalidInput, MaxNameLength)
	}

	rating := players.UniformRating
	if balanceByRating {
		if !players.ValidRating(d.Rating) {
			return players.Draft{}, fmt.Errorf("%w: rating %.1f outside %.0f-%.0f in steps of %.1f",
				draft.ErrInvalidInput, d.Rating, players.MinRating, players.MaxRating, players.RatingStep)
		}
		rating = d.Rating
	}
	return players.Draft{Name: name, Rating: rating, IsGoalkeeper: d.IsGoalkeeper}, nil
}
