package fixture

import (
	"context"
	"regexp"
	"strings"

	"github.com/preston-bernstein/team-draft-service/internal/providers"
)

// Name identifies the fixture extractor in logs and metrics.
const Name = "fixture"

var (
	// Leading list markers: "1.", "2)", "03 -", "-", "*", "•".
	listMarker = regexp.MustCompile(`^\s*(?:\d{1,3}\s*[.)\-:]|[-*•·])\s*`)
	// Trailing annotations commonly appended to sign-up lists: "(confirmado)", "✅", "- ok".
	trailingNote = regexp.MustCompile(`\s*(?:\([^)]*\)|[✅✔☑️]+)\s*$`)
)

// Extractor parses one name per line without calling any external service. It backs local
// development and the CLI, and mirrors what the remote extractor returns for simple lists.
type Extractor struct{}

// New creates a fixture extractor.
func New() *Extractor {
	return &Extractor{}
}

// ExtractNames splits text into lines, strips list markers and annotations, and skips header lines
// ending in ':'.
func (e *Extractor) ExtractNames(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, providers.ErrEmptyText
	}

	raw := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasSuffix(line, ":") {
			continue
		}
		line = listMarker.ReplaceAllString(line, "")
		line = trailingNote.ReplaceAllString(line, "")
		raw = append(raw, line)
	}

	names := providers.NormalizeNames(raw)
	if len(names) == 0 {
		return nil, providers.ErrNoNamesFound
	}
	return names, nil
}
