package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/calebward/fueltally/internal/common"
)

// anthropicClient implements the Client interface for the Anthropic API.
type anthropicClient struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
}

// newAnthropicClient creates a new Anthropic API client.
func newAnthropicClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: anthropic API key is required", common.ErrMissingConfig)
	}

	model := cfg.Model
	if model == "" {
		model = "claude-3-5-sonnet-20241022"
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	return &anthropicClient{
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// complete sends one message exchange and returns the raw response text.
func (c *anthropicClient) complete(ctx context.Context, system, prompt string, temperature float64) (string, error) {
	requestBody := map[string]any{
		"model":       c.model,
		"max_tokens":  c.maxTokens,
		"temperature": temperature,
		"system":      system,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.anthropic.com/v1/messages", strings.NewReader(string(jsonBody)))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response anthropicResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response envelope: %w", err)
	}

	if len(response.Content) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	return response.Content[0].Text, nil
}

// ClassifyTiers sends a tier-classification request to Anthropic.
func (c *anthropicClient) ClassifyTiers(ctx context.Context, prompt string) (TierResponse, error) {
	system := "You are an expert in heavy machinery logistics. Respond only with a JSON object matching the requested schema, with no surrounding prose or markdown."

	text, err := c.complete(ctx, system, prompt, 0.1)
	if err != nil {
		return TierResponse{}, err
	}

	return parseTierResponse(text)
}

// NormalizeRows sends one normalization batch to Anthropic.
func (c *anthropicClient) NormalizeRows(ctx context.Context, prompt string) (NormalizeResponse, error) {
	system := "You are a data normalization engine. Respond only with a JSON object matching the requested schema, with no surrounding prose or markdown."

	text, err := c.complete(ctx, system, prompt, 0)
	if err != nil {
		return NormalizeResponse{}, err
	}

	return parseNormalizeResponse(text)
}

// GenerateInsights asks Anthropic for a free-text analysis.
func (c *anthropicClient) GenerateInsights(ctx context.Context, prompt string) (string, error) {
	system := "You are a senior logistics and operations analyst. Respond in concise markdown."

	return c.complete(ctx, system, prompt, 0.5)
}
