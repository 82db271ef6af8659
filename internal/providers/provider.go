package providers

import (
	"context"
	"strings"
)

// Extractor turns free-form pasted text (a chat message, a sign-up list) into player names.
// Implementations return trimmed, non-empty, de-duplicated names in the order they appear.
type Extractor interface {
	ExtractNames(ctx context.Context, text string) ([]string, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, text string) ([]string, error)

// ExtractNames calls f.
func (f ExtractorFunc) ExtractNames(ctx context.Context, text string) ([]string, error) {
	return f(ctx, text)
}

// NormalizeNames trims names, drops blanks and removes case-insensitive duplicates, keeping first occurrence.
func NormalizeNames(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, name := range raw {
		name = strings.Join(strings.Fields(name), " ")
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}
