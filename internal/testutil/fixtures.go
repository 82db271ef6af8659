package testutil

import (
	"fmt"

	"github.com/preston-bernstein/team-draft-service/internal/domain/players"
)

// SampleDrafts builds n drafts named "Player 1".."Player n" with ratings cycling 1 to 5.
func SampleDrafts(n int) []players.Draft {
	out := make([]players.Draft, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, players.Draft{
			Name:   fmt.Sprintf("Player %d", i),
			Rating: float64((i-1)%5 + 1),
		})
	}
	return out
}
