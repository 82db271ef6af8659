package draft

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidInput marks a request the allocator refuses to run: an empty roster or a
	// team size that is not a positive integer.
	ErrInvalidInput = errors.New("invalid input")
	// ErrCapacityInvariant means a draft round placed nobody while players were still queued.
	// Capacities always add up to the roster size, so this indicates a bug.
	ErrCapacityInvariant = errors.New("draft capacity invariant violated")
)

// ParsePlayersPerTeam converts a raw team size (form field, query param, flag) into a positive int.
func ParsePlayersPerTeam(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: players per team %q is not a number", ErrInvalidInput, raw)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: players per team must be positive, got %d", ErrInvalidInput, n)
	}
	return n, nil
}
