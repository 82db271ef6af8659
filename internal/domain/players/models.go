package players

// Rating bounds for a player's skill score. Ratings move in half steps.
const (
	MinRating     = 1.0
	MaxRating     = 5.0
	RatingStep    = 0.5
	DefaultRating = 3.5
	// UniformRating replaces the entered rating when balancing is switched off.
	UniformRating = 1.0
)

// Player is a roster participant.
type Player struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Rating       float64 `json:"rating"`
	IsGoalkeeper bool    `json:"isGoalkeeper,omitempty"`
}

// Draft is a player that has not been assigned an ID yet (manual entry or import).
type Draft struct {
	Name         string  `json:"name"`
	Rating       float64 `json:"rating"`
	IsGoalkeeper bool    `json:"isGoalkeeper,omitempty"`
}

// ValidRating reports whether r is inside the rating range and on a half step.
func ValidRating(r float64) bool {
	if r < MinRating || r > MaxRating {
		return false
	}
	steps := r / RatingStep
	return steps == float64(int(steps))
}

// TotalRating sums the ratings of the given players.
func TotalRating(items []Player) float64 {
	var total float64
	for _, p := range items {
		total += p.Rating
	}
	return total
}
