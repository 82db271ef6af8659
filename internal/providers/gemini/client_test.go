package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/preston-bernstein/team-draft-service/internal/providers"
)

func TestExtractNamesPostsPromptAndParsesArray(t *testing.T) {
	var captured generateRequest
	var capturedKey, capturedPath string

	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		capturedPath = req.URL.Path
		capturedKey = req.Header.Get(apiKeyHeader)
		if req.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", req.Method)
		}
		if err := json.NewDecoder(req.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"[\"Ana\", \" Bruno \", \"ana\", \"\"]"}]}}]}`), nil
	})

	client := NewClient(Config{
		BaseURL:    "https://gemini.test/v1beta/",
		APIKey:     "secret",
		Model:      "models/test-model",
		HTTPClient: &http.Client{Transport: rt},
	})

	names, err := client.ExtractNames(context.Background(), "1. Ana\n2. Bruno")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if diff := cmp.Diff([]string{"Ana", "Bruno"}, names); diff != "" {
		t.Fatalf("unexpected names (-want +got):\n%s", diff)
	}
	if capturedPath != "/v1beta/models/test-model:generateContent" {
		t.Fatalf("unexpected path %s", capturedPath)
	}
	if capturedKey != "secret" {
		t.Fatalf("expected api key header, got %q", capturedKey)
	}
	if captured.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Fatalf("expected json response mime type, got %q", captured.GenerationConfig.ResponseMIMEType)
	}
	if captured.GenerationConfig.ResponseSchema.Items == nil || captured.GenerationConfig.ResponseSchema.Items.Type != "STRING" {
		t.Fatalf("expected string array schema, got %+v", captured.GenerationConfig.ResponseSchema)
	}
	if len(captured.Contents) != 1 || !strings.Contains(captured.Contents[0].Parts[0].Text, "2. Bruno") {
		t.Fatalf("expected prompt to carry the input text, got %+v", captured.Contents)
	}
}

func TestExtractNamesRateLimited(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		resp := jsonResponse(http.StatusTooManyRequests, `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`)
		resp.Header.Set("Retry-After", "7")
		return resp, nil
	})
	client := NewClient(Config{APIKey: "k", HTTPClient: &http.Client{Transport: rt}})

	_, err := client.ExtractNames(context.Background(), "Ana")
	rlErr, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if rlErr.RetryAfter != 7*time.Second {
		t.Fatalf("expected retry after 7s, got %s", rlErr.RetryAfter)
	}
	if rlErr.Message != "quota exceeded" {
		t.Fatalf("unexpected message %q", rlErr.Message)
	}
}

func TestExtractNamesUpstreamFailure(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusServiceUnavailable, "overloaded"), nil
	})
	client := NewClient(Config{APIKey: "k", HTTPClient: &http.Client{Transport: rt}})

	_, err := client.ExtractNames(context.Background(), "Ana")
	extErr, ok := providers.AsExternalServiceError(err)
	if !ok {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if extErr.StatusCode != http.StatusServiceUnavailable || !extErr.Temporary() {
		t.Fatalf("expected temporary 503, got %+v", extErr)
	}
}

func TestExtractNamesNetworkFailure(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("dial failed")
	})
	client := NewClient(Config{APIKey: "k", HTTPClient: &http.Client{Transport: rt}})

	_, err := client.ExtractNames(context.Background(), "Ana")
	if _, ok := providers.AsExternalServiceError(err); !ok {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
}

func TestExtractNamesMalformedPayload(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"Ana, Bruno"}]}}]}`), nil
	})
	client := NewClient(Config{APIKey: "k", HTTPClient: &http.Client{Transport: rt}})

	_, err := client.ExtractNames(context.Background(), "Ana")
	if _, ok := providers.AsExternalServiceError(err); !ok {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
}

func TestExtractNamesEmptyArray(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, "{\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"```json\\n[]\\n```\"}]}}]}"), nil
	})
	client := NewClient(Config{APIKey: "k", HTTPClient: &http.Client{Transport: rt}})

	_, err := client.ExtractNames(context.Background(), "nothing here")
	if !errors.Is(err, providers.ErrNoNamesFound) {
		t.Fatalf("expected ErrNoNamesFound, got %v", err)
	}
}

func TestExtractNamesRejectsEmptyTextAndMissingKey(t *testing.T) {
	client := NewClient(Config{APIKey: "k"})
	if _, err := client.ExtractNames(context.Background(), "   "); !errors.Is(err, providers.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}

	noKey := NewClient(Config{})
	if _, err := noKey.ExtractNames(context.Background(), "Ana"); !errors.Is(err, providers.ErrExtractorUnavailable) {
		t.Fatalf("expected ErrExtractorUnavailable, got %v", err)
	}
}

func jsonResponse(status int, body string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     header,
	}
}

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
