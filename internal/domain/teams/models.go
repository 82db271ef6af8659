package teams

import (
	"strconv"

	"github.com/preston-bernstein/team-draft-service/internal/domain/players"
)

// NamePrefix is prepended to the 1-based team position to build its label.
const NamePrefix = "Time "

// Team is one side produced by an allocation run.
type Team struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Players     []players.Player `json:"players"`
	TotalRating float64          `json:"totalRating"`
}

// Result is the output of an allocation: ordered teams plus roster members left out.
type Result struct {
	Teams      []Team           `json:"teams"`
	Unassigned []players.Player `json:"unassigned"`
}

// NameFor returns the label for the team at the given 1-based position.
func NameFor(id int) string {
	return NamePrefix + strconv.Itoa(id)
}

// AssignedCount returns how many players are spread across the teams.
func AssignedCount(items []Team) int {
	n := 0
	for _, t := range items {
		n += len(t.Players)
	}
	return n
}

// Clone deep-copies teams so callers cannot mutate shared player slices.
func Clone(items []Team) []Team {
	if items == nil {
		return nil
	}
	out := make([]Team, len(items))
	for i, t := range items {
		t.Players = append([]players.Player(nil), t.Players...)
		out[i] = t
	}
	return out
}
