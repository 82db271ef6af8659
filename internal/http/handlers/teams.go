package handlers

import (
	nethttp "net/http"

	appteams "github.com/preston-bernstein/team-draft-service/internal/app/teams"
	"github.com/preston-bernstein/team-draft-service/internal/domain/players"
	"github.com/preston-bernstein/team-draft-service/internal/domain/teams"
	"github.com/preston-bernstein/team-draft-service/internal/export"
	"github.com/preston-bernstein/team-draft-service/internal/http/requestutil"
)

// Teams returns the latest teams (GET) or generates new ones from the roster (POST).
func (h *Handler) Teams(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allowMethods(w, r, h.logger, nethttp.MethodGet, nethttp.MethodPost) {
		return
	}
	if r.Method == nethttp.MethodGet {
		writeJSON(w, nethttp.StatusOK, toTeamsResponse(h.teams.Current()), h.logger)
		return
	}

	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	perTeam, err := parsePlayersPerTeam(req.PlayersPerTeam, h.defaults.PlayersPerTeam)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	run, err := h.teams.Generate(r.Context(), perTeam, boolOr(req.BalanceByRating, h.defaults.BalanceByRating))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, toTeamsResponse(run), h.logger)
}

// ExportTeams renders the latest teams as plain text. ?ratings=false hides ratings.
func (h *Handler) ExportTeams(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allowMethods(w, r, h.logger, nethttp.MethodGet) {
		return
	}
	opts := export.Options{ShowRatings: requestutil.BoolQuery(r, "ratings", true)}
	writeText(w, nethttp.StatusOK, h.teams.Export(opts), h.logger)
}

func toTeamsResponse(run appteams.Run) teamsResponse {
	out := teamsResponse{
		RunID:           run.ID,
		PlayersPerTeam:  run.PlayersPerTeam,
		BalanceByRating: run.BalanceByRating,
		Teams:           run.Teams,
		Unassigned:      run.Unassigned,
	}
	if out.Teams == nil {
		out.Teams = []teams.Team{}
	}
	if out.Unassigned == nil {
		out.Unassigned = []players.Player{}
	}
	return out
}
