// Package requestutil holds request helpers shared by middleware and handlers.
package requestutil

import (
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const maxRequestIDLen = 64

// SanitizeRequestID keeps a caller-supplied id only when it is short and made of
// [A-Za-z0-9_-]; anything else is replaced with a fresh id.
func SanitizeRequestID(incoming string) string {
	if validRequestID(incoming) {
		return incoming
	}
	return NewRequestID()
}

// NewRequestID returns a random UUID string.
func NewRequestID() string {
	return uuid.NewString()
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

// ClientIP prefers proxy headers over the socket address.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	for _, candidate := range []string{first, r.Header.Get("X-Real-IP")} {
		if ip := strings.TrimSpace(candidate); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// BoolQuery reads a boolean query parameter. Absent or unrecognised values yield fallback.
func BoolQuery(r *http.Request, key string, fallback bool) bool {
	if r == nil {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}
