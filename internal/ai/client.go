// Package ai wraps the Gemini-style generative language endpoint used by
// the member chat assistant.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"gym-backend/config"
)

// Client answers free-form member questions.
type Client interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

// GeminiClient talks to a generateContent-style HTTP endpoint.
type GeminiClient struct {
	url    string
	apiKey string
	model  string
	http   *http.Client
}

// NewGeminiClient builds a client from configuration. Returns nil when the
// assistant is disabled; callers must handle a nil client.
func NewGeminiClient(cfg *config.AIConfig) *GeminiClient {
	if !cfg.Enabled {
		return nil
	}
	return &GeminiClient{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Chat sends the prompt and returns the first candidate's text.
func (c *GeminiClient) Chat(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.url, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call ai endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("ai endpoint returned %d: %s", resp.StatusCode, data)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("ai endpoint returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
