// Package gemini wraps the Gemini generateContent call of the genai SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/pinswap/api/internal/config"
)

var (
	ErrMissingAPIKey = errors.New("gemini api key is not configured")
	ErrUpstream      = errors.New("gemini api error")
)

// NoReply is returned when the response carries no candidate text.
const NoReply = "No reply"

// DefaultGenerationConfig keeps replies short and on topic.
func DefaultGenerationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		MaxOutputTokens: 800,
		TopP:            genai.Ptr[float32](0.8),
		TopK:            genai.Ptr[float32](10),
	}
}

type Client struct {
	model  string
	models *genai.Models
}

// NewClient builds a Gemini API client. Without an API key it still returns a
// client, and every call fails with ErrMissingAPIKey.
func NewClient(ctx context.Context, conf *config.GeminiConfig) (*Client, error) {
	c := &Client{model: conf.Model}
	if conf.APIKey == "" {
		return c, nil
	}

	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     conf.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    conf.BaseURL,
			APIVersion: conf.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient -> %w", err)
	}
	c.models = client.Models

	return c, nil
}

// GenerateContent sends prompt as a single user turn and returns the first candidate's text.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c.models == nil {
		return "", ErrMissingAPIKey
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), DefaultGenerationConfig())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	reply := resp.Text()
	if reply == "" {
		return NoReply, nil
	}

	return reply, nil
}
