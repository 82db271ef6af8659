package logging

import "log/slog"

// Field keys shared by every package so roster, draft and request logs can be joined.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldError      = "error"
	FieldExtractor  = "extractor"
	FieldRunID      = "run_id"
	FieldPlayers    = "players"
	FieldTeams      = "teams"
	FieldPerTeam    = "players_per_team"
	FieldBalanced   = "balanced"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
)

// WithCommon appends the service and version attrs that are set.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
