package draft

import (
	"github.com/preston-bernstein/team-draft-service/internal/domain/players"
	"github.com/preston-bernstein/team-draft-service/internal/domain/teams"
)

// Unassigned returns roster members that appear in none of the teams, in roster order.
// It only finds anyone when the roster changed after the teams were generated.
func Unassigned(roster []players.Player, generated []teams.Team) []players.Player {
	assigned := make(map[int]struct{}, teams.AssignedCount(generated))
	for _, t := range generated {
		for _, p := range t.Players {
			assigned[p.ID] = struct{}{}
		}
	}
	out := make([]players.Player, 0)
	for _, p := range roster {
		if _, ok := assigned[p.ID]; !ok {
			out = append(out, p)
		}
	}
	return out
}
