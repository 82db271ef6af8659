package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/team-draft-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/players", handler.Players)
	mux.HandleFunc("/players/batch", handler.PlayersBatch)
	mux.HandleFunc("/players/extract", handler.ExtractPlayers)
	mux.HandleFunc("/players/import", handler.ImportPlayers)
	mux.HandleFunc("/players/", handler.PlayerByID)
	mux.HandleFunc("/teams", handler.Teams)
	mux.HandleFunc("/teams/export", handler.ExportTeams)
	return mux
}
