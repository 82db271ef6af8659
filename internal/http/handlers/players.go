package handlers

import (
	"fmt"
	nethttp "net/http"
	"strconv"
	"strings"

	"github.com/preston-bernstein/team-draft-service/internal/domain/players"
	"github.com/preston-bernstein/team-draft-service/internal/draft"
)

// Players lists (GET), adds (POST) or clears (DELETE) the roster.
func (h *Handler) Players(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allowMethods(w, r, h.logger, nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodDelete) {
		return
	}
	switch r.Method {
	case nethttp.MethodGet:
		writeJSON(w, nethttp.StatusOK, playersResponse{Players: h.players.Players()}, h.logger)
	case nethttp.MethodDelete:
		h.players.Clear()
		w.WriteHeader(nethttp.StatusNoContent)
	default:
		var req addPlayerRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeServiceError(w, r, err, h.logger)
			return
		}
		d := req.draft()
		p, err := h.players.Add(d.Name, d.Rating, d.IsGoalkeeper, boolOr(req.BalanceByRating, h.defaults.BalanceByRating))
		if err != nil {
			writeServiceError(w, r, err, h.logger)
			return
		}
		writeJSON(w, nethttp.StatusCreated, p, h.logger)
	}
}

// PlayersBatch adds several players at once; nothing is added if any entry is invalid.
func (h *Handler) PlayersBatch(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allowMethods(w, r, h.logger, nethttp.MethodPost) {
		return
	}
	var req batchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	drafts := make([]players.Draft, 0, len(req.Players))
	for _, p := range req.Players {
		drafts = append(drafts, p.draft())
	}
	added, err := h.players.AddBatch(drafts, boolOr(req.BalanceByRating, h.defaults.BalanceByRating))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusCreated, playersResponse{Players: added}, h.logger)
}

// PlayerByID removes a single player: DELETE /players/{id}.
func (h *Handler) PlayerByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allowMethods(w, r, h.logger, nethttp.MethodDelete) {
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/players/")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		writeServiceError(w, r, fmt.Errorf("%w: invalid player id %q", draft.ErrInvalidInput, raw), h.logger)
		return
	}
	if err := h.players.Remove(id); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(nethttp.StatusNoContent)
}

// ExtractPlayers returns the names found in pasted text without changing the roster.
func (h *Handler) ExtractPlayers(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allowMethods(w, r, h.logger, nethttp.MethodPost) {
		return
	}
	var req textRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	names, err := h.players.ExtractNames(r.Context(), req.Text)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, namesResponse{Names: names}, h.logger)
}

// ImportPlayers extracts names from pasted text and adds them with the default rating.
func (h *Handler) ImportPlayers(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allowMethods(w, r, h.logger, nethttp.MethodPost) {
		return
	}
	var req textRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	added, err := h.players.Import(r.Context(), req.Text, boolOr(req.BalanceByRating, h.defaults.BalanceByRating))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusCreated, playersResponse{Players: added}, h.logger)
}
