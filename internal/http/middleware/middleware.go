package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/team-draft-service/internal/http/requestutil"
	"github.com/preston-bernstein/team-draft-service/internal/logging"
	"github.com/preston-bernstein/team-draft-service/internal/metrics"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// Paths outside this set collapse to "other" so metric labels stay bounded.
var knownRoutes = map[string]bool{
	"/health": true, "/ready": true,
	"/players": true, "/players/batch": true, "/players/extract": true, "/players/import": true,
	"/teams": true, "/teams/export": true,
}

type requestIDKey struct{}

// LoggingMiddleware tags every request with an id and a scoped logger, then
// records one access log line and one http metric when the handler returns.
func LoggingMiddleware(baseLogger *slog.Logger, recorder *metrics.Recorder, next http.Handler) http.Handler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := requestutil.SanitizeRequestID(r.Header.Get(RequestIDHeader))
		w.Header().Set(RequestIDHeader, reqID)

		logger := requestLogger(baseLogger, r, reqID)
		ctx := withRequestID(logging.WithLogger(r.Context(), logger), reqID)
		sw := &statusWriter{ResponseWriter: w}

		next.ServeHTTP(sw, r.WithContext(ctx))

		elapsed := time.Since(start)
		status := sw.Status()
		recorder.RecordHTTPRequest(r.Method, normalizePath(r.URL.Path), status, elapsed)
		logger.Log(ctx, accessLevel(status), "request complete",
			slog.Int(logging.FieldStatusCode, status),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			slog.Int("bytes", sw.written),
		)
	})
}

func requestLogger(base *slog.Logger, r *http.Request, reqID string) *slog.Logger {
	attrs := []any{
		slog.String(logging.FieldRequestID, reqID),
		slog.String(logging.FieldMethod, r.Method),
		slog.String(logging.FieldPath, r.URL.Path),
		slog.String("client_ip", requestutil.ClientIP(r)),
	}
	if r.URL.RawQuery != "" {
		attrs = append(attrs, slog.String("query", r.URL.RawQuery))
	}
	return base.With(attrs...)
}

func accessLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// statusWriter remembers the status code and body size. A handler that never
// calls WriteHeader is reported as 200.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written int
}

func (w *statusWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.written += n
	return n, err
}

func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// RequestIDFromContext returns the id stored by LoggingMiddleware, or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func normalizePath(path string) string {
	if path == "" {
		return ""
	}
	path, _, _ = strings.Cut(path, "?")
	if knownRoutes[path] {
		return path
	}
	if strings.HasPrefix(path, "/players/") {
		return "/players/:id"
	}
	return "other"
}
