package gemini

import "time"

// Name identifies the Gemini extractor in logs and metrics.
const Name = "gemini"

const (
	defaultBaseURL     = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel       = "gemini-2.0-flash"
	defaultHTTPTimeout = 15 * time.Second
	maxErrorBody       = 512
	apiKeyHeader       = "x-goog-api-key"
)

const extractionPrompt = `Extract every person's name from the text below. The text is usually a sign-up list for a casual football match and may contain numbering, emojis, times or comments.
Return only the names, in the order they appear, without numbering or annotations. Ignore headers, dates and places.

Text:
`
