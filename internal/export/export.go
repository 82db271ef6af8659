// Package export renders generated teams as plain text for sharing.
package export

import (
	"strconv"
	"strings"

	"github.com/preston-bernstein/team-draft-service/internal/domain/players"
	"github.com/preston-bernstein/team-draft-service/internal/domain/teams"
)

const (
	totalLabel       = "Nota Total"
	goalkeeperMarker = " (G)"
	unassignedHeader = "Jogadores Não Atribuídos"
)

// Options controls which details are rendered.
type Options struct {
	// ShowRatings adds the team total to headers and each player's rating to their line.
	ShowRatings bool
}

// Format renders teams as blocks separated by a blank line:
//
//	Time 1 (Nota Total: 7.5)
//	- Ana (G) - 4.0
//	- Bruno - 3.5
func Format(items []teams.Team, opts Options) string {
	blocks := make([]string, 0, len(items))
	for _, t := range items {
		var b strings.Builder
		b.WriteString(t.Name)
		if opts.ShowRatings {
			b.WriteString(" (" + totalLabel + ": " + rating(t.TotalRating) + ")")
		}
		for _, p := range t.Players {
			b.WriteString("\n")
			b.WriteString(playerLine(p, opts))
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

// FormatUnassigned renders roster members left out of the teams. It returns "" when there are none.
func FormatUnassigned(items []players.Player, opts Options) string {
	if len(items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, unassignedHeader)
	for _, p := range items {
		lines = append(lines, playerLine(p, opts))
	}
	return strings.Join(lines, "\n")
}

func playerLine(p players.Player, opts Options) string {
	line := "- " + p.Name
	if p.IsGoalkeeper {
		line += goalkeeperMarker
	}
	if opts.ShowRatings {
		line += " - " + rating(p.Rating)
	}
	return line
}

func rating(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
