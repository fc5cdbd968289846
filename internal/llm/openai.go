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

// openaiClient implements the Client interface for the OpenAI API.
type openaiClient struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
}

// newOpenAIClient creates a new OpenAI API client.
func newOpenAIClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai API key is required", common.ErrMissingConfig)
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	return &openaiClient{
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

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete sends one chat completion and returns the raw response text.
// jsonMode asks the API to constrain output to a single JSON object.
func (c *openaiClient) complete(ctx context.Context, system, prompt string, temperature float64, jsonMode bool) (string, error) {
	requestBody := map[string]any{
		"model":       c.model,
		"max_tokens":  c.maxTokens,
		"temperature": temperature,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": prompt},
		},
	}
	if jsonMode {
		requestBody["response_format"] = map[string]string{"type": "json_object"}
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.openai.com/v1/chat/completions", strings.NewReader(string(jsonBody)))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

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
		return "", fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response openaiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response envelope: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return response.Choices[0].Message.Content, nil
}

// ClassifyTiers sends a tier-classification request to OpenAI.
func (c *openaiClient) ClassifyTiers(ctx context.Context, prompt string) (TierResponse, error) {
	system := "You are an expert in heavy machinery logistics. Respond only with a JSON object matching the requested schema."

	text, err := c.complete(ctx, system, prompt, 0.1, true)
	if err != nil {
		return TierResponse{}, err
	}

	return parseTierResponse(text)
}

// NormalizeRows sends one normalization batch to OpenAI.
func (c *openaiClient) NormalizeRows(ctx context.Context, prompt string) (NormalizeResponse, error) {
	system := "You are a data normalization engine. Respond only with a JSON object matching the requested schema."

	text, err := c.complete(ctx, system, prompt, 0, true)
	if err != nil {
		return NormalizeResponse{}, err
	}

	return parseNormalizeResponse(text)
}

// GenerateInsights asks OpenAI for a free-text analysis.
func (c *openaiClient) GenerateInsights(ctx context.Context, prompt string) (string, error) {
	system := "You are a senior logistics and operations analyst. Respond in concise markdown."

	return c.complete(ctx, system, prompt, 0.5, false)
}
