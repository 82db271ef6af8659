// Package draft splits a roster into balanced teams with a capacity-aware snake draft.
package draft

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/preston-bernstein/team-draft-service/internal/domain/players"
	"github.com/preston-bernstein/team-draft-service/internal/domain/teams"
)

// Allocator runs allocations. The zero value is not usable; construct with New.
type Allocator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns an Allocator drawing shuffles from src. A nil src seeds from the clock.
func New(src rand.Source) *Allocator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Allocator{rng: rand.New(src)}
}

// NewSeeded returns an Allocator with a fixed seed, producing repeatable results.
func NewSeeded(seed int64) *Allocator {
	return New(rand.NewSource(seed))
}

// Allocate partitions roster into teams of playersPerTeam. Only the last team in the capacity
// plan may be smaller. With balanceByRating the shuffled roster is ordered by rating before the
// draft; equal ratings keep their shuffled order.
func (a *Allocator) Allocate(roster []players.Player, playersPerTeam int, balanceByRating bool) (teams.Result, error) {
	if len(roster) == 0 {
		return teams.Result{}, fmt.Errorf("%w: roster is empty", ErrInvalidInput)
	}
	if playersPerTeam <= 0 {
		return teams.Result{}, fmt.Errorf("%w: players per team must be positive, got %d", ErrInvalidInput, playersPerTeam)
	}

	plan := PlanTeams(len(roster), playersPerTeam)
	if plan.TotalTeams() == 0 {
		return teams.Result{Teams: []teams.Team{}, Unassigned: []players.Player{}}, nil
	}

	queue := a.order(roster, balanceByRating)
	builders := newBuilders(plan.Capacities(playersPerTeam))
	if err := snake(builders, queue); err != nil {
		return teams.Result{}, err
	}

	final := finalize(builders)
	return teams.Result{
		Teams:      final,
		Unassigned: Unassigned(roster, final),
	}, nil
}

// order shuffles a copy of the roster and optionally stable-sorts it by rating, highest first.
func (a *Allocator) order(roster []players.Player, balanceByRating bool) []players.Player {
	queue := append([]players.Player(nil), roster...)

	a.mu.Lock()
	a.rng.Shuffle(len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})
	a.mu.Unlock()

	if balanceByRating {
		sort.SliceStable(queue, func(i, j int) bool {
			return queue[i].Rating > queue[j].Rating
		})
	}
	return queue
}

// snake deals the queue out round by round, forwards on even rounds and backwards on odd ones,
// skipping teams that reached capacity.
func snake(builders []*teamBuilder, queue []players.Player) error {
	next := 0
	for round := 0; next < len(queue); round++ {
		assigned := false
		for i := range builders {
			idx := i
			if round%2 == 1 {
				idx = len(builders) - 1 - i
			}
			b := builders[idx]
			if next < len(queue) && !b.full() {
				b.add(queue[next])
				next++
				assigned = true
			}
		}
		if !assigned {
			return fmt.Errorf("%w: round %d placed nobody with %d of %d players left",
				ErrCapacityInvariant, round, len(queue)-next, len(queue))
		}
	}
	return nil
}

// finalize drops capacity bookkeeping, puts smaller teams last and renumbers 1..N.
func finalize(builders []*teamBuilder) []teams.Team {
	out := make([]teams.Team, len(builders))
	for i, b := range builders {
		out[i] = b.team
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Players) > len(out[j].Players)
	})
	for i := range out {
		out[i].ID = i + 1
		out[i].Name = teams.NameFor(i + 1)
	}
	return out
}
