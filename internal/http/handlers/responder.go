package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	appplayers "github.com/preston-bernstein/team-draft-service/internal/app/players"
	"github.com/preston-bernstein/team-draft-service/internal/draft"
	"github.com/preston-bernstein/team-draft-service/internal/http/middleware"
	"github.com/preston-bernstein/team-draft-service/internal/logging"
	"github.com/preston-bernstein/team-draft-service/internal/providers"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeText(w http.ResponseWriter, status int, body string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		logging.Error(logger, "failed to write response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(middleware.RequestIDHeader)
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeServiceError maps service errors to a status code. Client errors echo the error text;
// server-side failures get a fixed message and are logged.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	logger := loggerFromContext(r, fallback)

	if rlErr, ok := providers.AsRateLimitError(err); ok {
		if rlErr.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(rlErr.RetryAfter.Seconds()))))
		}
		logging.Warn(logger, "extractor rate limited", logging.Err(err))
		writeError(w, r, http.StatusTooManyRequests, "name extraction is rate limited, try again shortly", fallback)
		return
	}
	if _, ok := providers.AsExternalServiceError(err); ok {
		logging.Warn(logger, "extractor failed", logging.Err(err))
		writeError(w, r, http.StatusBadGateway, "name extraction service failed, try again", fallback)
		return
	}

	switch {
	case errors.Is(err, draft.ErrInvalidInput), errors.Is(err, providers.ErrEmptyText):
		writeError(w, r, http.StatusBadRequest, err.Error(), fallback)
	case errors.Is(err, appplayers.ErrPlayerNotFound):
		writeError(w, r, http.StatusNotFound, err.Error(), fallback)
	case errors.Is(err, providers.ErrNoNamesFound):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error(), fallback)
	case errors.Is(err, providers.ErrExtractorUnavailable):
		logging.Warn(logger, "extractor unavailable", logging.Err(err))
		writeError(w, r, http.StatusServiceUnavailable, "name extraction is not configured", fallback)
	case errors.Is(err, context.DeadlineExceeded):
		logging.Warn(logger, "request timed out", logging.Err(err))
		writeError(w, r, http.StatusGatewayTimeout, "request timed out", fallback)
	case errors.Is(err, context.Canceled):
		// Client went away; the status is only seen in logs.
		writeError(w, r, 499, "request canceled", fallback)
	default:
		logging.Error(logger, "request failed", err)
		writeError(w, r, http.StatusInternalServerError, "internal error", fallback)
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
