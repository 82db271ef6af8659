package draft

import (
	"github.com/preston-bernstein/team-draft-service/internal/domain/players"
	"github.com/preston-bernstein/team-draft-service/internal/domain/teams"
)

// teamBuilder is a team under construction. capacity only lives for the draft loop.
type teamBuilder struct {
	team     teams.Team
	capacity int
}

func (b *teamBuilder) full() bool {
	return len(b.team.Players) >= b.capacity
}

func (b *teamBuilder) add(p players.Player) {
	b.team.Players = append(b.team.Players, p)
	b.team.TotalRating += p.Rating
}

// Plan describes how a roster splits into teams for a given team size.
type Plan struct {
	FullTeams int
	Remainder int
}

// TotalTeams is FullTeams plus one partial team when there is a remainder.
func (p Plan) TotalTeams() int {
	if p.Remainder > 0 {
		return p.FullTeams + 1
	}
	return p.FullTeams
}

// Capacities lists the capacity of each team in draft order; the partial team comes last.
func (p Plan) Capacities(playersPerTeam int) []int {
	out := make([]int, 0, p.TotalTeams())
	for i := 0; i < p.FullTeams; i++ {
		out = append(out, playersPerTeam)
	}
	if p.Remainder > 0 {
		out = append(out, p.Remainder)
	}
	return out
}

// PlanTeams computes the capacity plan for n players split into teams of size k.
func PlanTeams(n, k int) Plan {
	if n <= 0 || k <= 0 {
		return Plan{}
	}
	return Plan{FullTeams: n / k, Remainder: n % k}
}

func newBuilders(capacities []int) []*teamBuilder {
	builders := make([]*teamBuilder, len(capacities))
	for i, c := range capacities {
		builders[i] = &teamBuilder{
			team: teams.Team{
				ID:      i + 1,
				Name:    teams.NameFor(i + 1),
				Players: make([]players.Player, 0, c),
			},
			capacity: c,
		}
	}
	return builders
}
