package handlers

import (
	"log/slog"
	nethttp "net/http"
	"strings"

	appplayers "github.com/preston-bernstein/team-draft-service/internal/app/players"
	appteams "github.com/preston-bernstein/team-draft-service/internal/app/teams"
)

// Defaults fill in allocation settings a request leaves out.
type Defaults struct {
	PlayersPerTeam  int
	BalanceByRating bool
}

// Handler wires HTTP routes to the roster and team services.
type Handler struct {
	players  *appplayers.Service
	teams    *appteams.Service
	defaults Defaults
	logger   *slog.Logger
}

// NewHandler constructs a Handler. A non-positive default team size falls back to 2.
func NewHandler(playerSvc *appplayers.Service, teamSvc *appteams.Service, defaults Defaults, logger *slog.Logger) *Handler {
	if defaults.PlayersPerTeam <= 0 {
		defaults.PlayersPerTeam = 2
	}
	return &Handler{
		players:  playerSvc,
		teams:    teamSvc,
		defaults: defaults,
		logger:   logger,
	}
}

// ServeHTTP dispatches on path so the handler can be mounted without a mux.
func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch path := r.URL.Path; {
	case path == "/health":
		h.Health(w, r)
	case path == "/ready":
		h.Ready(w, r)
	case path == "/players":
		h.Players(w, r)
	case path == "/players/batch":
		h.PlayersBatch(w, r)
	case path == "/players/extract":
		h.ExtractPlayers(w, r)
	case path == "/players/import":
		h.ImportPlayers(w, r)
	case strings.HasPrefix(path, "/players/"):
		h.PlayerByID(w, r)
	case path == "/teams":
		h.Teams(w, r)
	case path == "/teams/export":
		h.ExportTeams(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allowMethods(w, r, h.logger, nethttp.MethodGet) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic once both services are wired.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allowMethods(w, r, h.logger, nethttp.MethodGet) {
		return
	}
	if h.players == nil || h.teams == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "not ready", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

func allowMethods(w nethttp.ResponseWriter, r *nethttp.Request, logger *slog.Logger, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", logger)
	return false
}
