package store

import (
	"sync"

	"github.com/preston-bernstein/team-draft-service/internal/domain/players"
	"github.com/preston-bernstein/team-draft-service/internal/domain/teams"
)

// Generation records the settings and output of the latest allocation run.
type Generation struct {
	RunID           string
	PlayersPerTeam  int
	BalanceByRating bool
	Teams           []teams.Team
}

// MemoryStore keeps a thread-safe roster and the latest generated teams in memory.
type MemoryStore struct {
	mu         sync.RWMutex
	order      []int
	players    map[int]players.Player
	lastID     int
	generation Generation
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		players: make(map[int]players.Player),
	}
}

// AddPlayers assigns fresh IDs to the drafts and appends them to the roster.
// IDs are never reused, including after RemovePlayer or ClearPlayers.
func (s *MemoryStore) AddPlayers(drafts []players.Draft) []players.Player {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]players.Player, 0, len(drafts))
	for _, d := range drafts {
		s.lastID++
		p := players.Player{
			ID:           s.lastID,
			Name:         d.Name,
			Rating:       d.Rating,
			IsGoalkeeper: d.IsGoalkeeper,
		}
		s.players[p.ID] = p
		s.order = append(s.order, p.ID)
		added = append(added, p)
	}
	return added
}

// ListPlayers returns a copy of the roster in insertion order.
func (s *MemoryStore) ListPlayers() []players.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]players.Player, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.players[id])
	}
	return result
}

// RemovePlayer deletes a player, reporting whether it was present.
func (s *MemoryStore) RemovePlayer(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[id]; !ok {
		return false
	}
	delete(s.players, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// ClearPlayers empties the roster and discards generated teams.
func (s *MemoryStore) ClearPlayers() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players = make(map[int]players.Player)
	s.order = nil
	s.generation = Generation{}
}

// SetGeneration replaces the latest generated teams.
func (s *MemoryStore) SetGeneration(g Generation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g.Teams = teams.Clone(g.Teams)
	s.generation = g
}

// ClearGeneration discards generated teams, keeping the roster.
func (s *MemoryStore) ClearGeneration() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation = Generation{}
}

// Generation returns a copy of the latest generated teams.
func (s *MemoryStore) Generation() Generation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g := s.generation
	g.Teams = teams.Clone(g.Teams)
	return g
}
