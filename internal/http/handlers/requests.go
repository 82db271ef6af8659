package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"

	"github.com/preston-bernstein/team-draft-service/internal/domain/players"
	"github.com/preston-bernstein/team-draft-service/internal/domain/teams"
	"github.com/preston-bernstein/team-draft-service/internal/draft"
)

const maxBodyBytes = 1 << 20

type addPlayerRequest struct {
	Name            string   `json:"name"`
	Rating          *float64 `json:"rating"`
	IsGoalkeeper    bool     `json:"isGoalkeeper"`
	BalanceByRating *bool    `json:"balanceByRating"`
}

type batchRequest struct {
	Players         []addPlayerRequest `json:"players"`
	BalanceByRating *bool              `json:"balanceByRating"`
}

type textRequest struct {
	Text            string `json:"text"`
	BalanceByRating *bool  `json:"balanceByRating"`
}

type generateRequest struct {
	// PlayersPerTeam accepts a number or a numeric string, as typed into a form field.
	PlayersPerTeam  json.RawMessage `json:"playersPerTeam"`
	BalanceByRating *bool           `json:"balanceByRating"`
}

type playersResponse struct {
	Players []players.Player `json:"players"`
}

type namesResponse struct {
	Names []string `json:"names"`
}

type teamsResponse struct {
	RunID           string           `json:"runId,omitempty"`
	PlayersPerTeam  int              `json:"playersPerTeam,omitempty"`
	BalanceByRating bool             `json:"balanceByRating"`
	Teams           []teams.Team     `json:"teams"`
	Unassigned      []players.Player `json:"unassigned"`
}

// decodeJSON reads a single JSON object from the body, rejecting unknown fields and trailing data.
func decodeJSON(w nethttp.ResponseWriter, r *nethttp.Request, dest any) error {
	r.Body = nethttp.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		var maxErr *nethttp.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: request body is empty", draft.ErrInvalidInput)
		case errors.As(err, &maxErr):
			return fmt.Errorf("%w: request body exceeds %d bytes", draft.ErrInvalidInput, maxErr.Limit)
		default:
			return fmt.Errorf("%w: malformed JSON: %v", draft.ErrInvalidInput, err)
		}
	}
	if dec.More() {
		return fmt.Errorf("%w: request body must contain a single JSON object", draft.ErrInvalidInput)
	}
	return nil
}

func (p addPlayerRequest) draft() players.Draft {
	rating := players.DefaultRating
	if p.Rating != nil {
		rating = *p.Rating
	}
	return players.Draft{Name: p.Name, Rating: rating, IsGoalkeeper: p.IsGoalkeeper}
}

func parsePlayersPerTeam(raw json.RawMessage, fallback int) (int, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return fallback, nil
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return draft.ParsePlayersPerTeam(asString)
	}
	return draft.ParsePlayersPerTeam(trimmed)
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
