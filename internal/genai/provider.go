// Package genai wraps the Gemini generateContent API for question
// generation, answer explanation, and subjective grading. Calls are single
// shot with no retry and no caching; every failure is converted to either a
// generation error or a fixed fallback value at the call site.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// defaultBaseURL is the default Gemini API base URL.
const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DefaultModel is the generation model used when the config names none.
const DefaultModel = "gemini-2.5-flash"

// APIKeyEnv is the environment variable holding the API key.
const APIKeyEnv = "GEMINI_API_KEY"

// ErrGeneration marks question generation failures: empty input, transport
// errors, and unparsable responses alike.
var ErrGeneration = errors.New("question generation failed")

// HTTPDoer abstracts HTTP clients used by the provider.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Provider calls the Gemini API over plain HTTP.
type Provider struct {
	APIKey  string
	BaseURL string
	Client  HTTPDoer
	Model   string
}

// FromEnv builds a provider with the API key taken from the environment.
// An empty keyEnv falls back to APIKeyEnv.
func FromEnv(model, keyEnv string) (*Provider, error) {
	if strings.TrimSpace(keyEnv) == "" {
		keyEnv = APIKeyEnv
	}
	apiKey := strings.TrimSpace(os.Getenv(keyEnv))
	if apiKey == "" {
		return nil, fmt.Errorf("%s is required", keyEnv)
	}
	return NewProvider(model, apiKey, "", nil)
}

// NewProvider constructs a provider with explicit settings.
func NewProvider(model, apiKey, baseURL string, client HTTPDoer) (*Provider, error) {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Provider{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
		Model:   model,
	}, nil
}

// generate sends one generateContent request and returns the text of the
// first candidate.
func (p *Provider) generate(ctx context.Context, request generateRequest) (string, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", p.BaseURL, p.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini error: %s", strings.TrimSpace(string(body)))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	text := parsed.firstText()
	if text == "" {
		return "", fmt.Errorf("empty response")
	}
	return text, nil
}
