package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/team-draft-service/internal/providers"
)

// Config controls how the client reaches the Gemini API.
type Config struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// Client extracts player names by asking Gemini for a JSON array of strings.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a Gemini client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		model:      resolveModel(cfg.Model),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// ExtractNames sends text to Gemini and returns the normalized names it found.
func (c *Client) ExtractNames(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, providers.ErrEmptyText
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key not configured", providers.ErrExtractorUnavailable)
	}

	req, err := c.buildRequest(ctx, text)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &providers.ExternalServiceError{Provider: Name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &providers.RateLimitError{
			Provider:   Name,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    errorMessage(resp.Body, "gemini rate limited"),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &providers.ExternalServiceError{
			Provider:   Name,
			StatusCode: resp.StatusCode,
			Err:        errors.New(errorMessage(resp.Body, http.StatusText(resp.StatusCode))),
		}
	}

	var payload generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &providers.ExternalServiceError{Provider: Name, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	raw, err := namesFromResponse(payload)
	if err != nil {
		return nil, &providers.ExternalServiceError{Provider: Name, StatusCode: resp.StatusCode, Err: err}
	}

	names := providers.NormalizeNames(raw)
	if len(names) == 0 {
		return nil, providers.ErrNoNamesFound
	}
	return names, nil
}

func (c *Client) buildRequest(ctx context.Context, text string) (*http.Request, error) {
	body := generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: extractionPrompt + text}},
		}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema{Type: "ARRAY", Items: &schema{Type: "STRING"}},
		},
	}
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)
	return req, nil
}

func namesFromResponse(payload generateResponse) ([]string, error) {
	if len(payload.Candidates) == 0 || len(payload.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("response has no candidates")
	}
	text := strings.TrimSpace(payload.Candidates[0].Content.Parts[0].Text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimSuffix(strings.TrimPrefix(text, "```"), "```")

	var names []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &names); err != nil {
		return nil, fmt.Errorf("parse names: %w", err)
	}
	return names, nil
}

func errorMessage(body io.Reader, fallback string) string {
	raw, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
	var parsed errorResponse
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" {
		return msg
	}
	return fallback
}
