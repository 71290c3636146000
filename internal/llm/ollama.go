// ABOUTME: Native Ollama client using POST /api/generate
// ABOUTME: Non-streaming single-prompt completion with sampling options and retries
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/harper/daily-coach/internal/util"
)

// OllamaClient talks to a local Ollama server
type OllamaClient struct {
	client *resty.Client
	opts   Options
}

type ollamaGenerateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllamaClient creates an Ollama client for opts.BaseURL
func NewOllamaClient(opts Options) (*OllamaClient, error) {
	if opts.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:11434"
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(opts.BaseURL, "/"))
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("User-Agent", "daily-coach/1.0")

	return &OllamaClient{client: client, opts: opts}, nil
}

// Name identifies the provider in logs
func (c *OllamaClient) Name() string {
	return "ollama"
}

// Complete generates a reply for prompt. Non-200 answers, transport errors
// and empty bodies are all errors.
func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	req := ollamaGenerateRequest{
		Model:  c.opts.Model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]interface{}{
			"temperature":    c.opts.Temperature,
			"num_predict":    c.opts.MaxTokens,
			"top_p":          c.opts.TopP,
			"repeat_penalty": c.opts.RepeatPenalty,
		},
	}

	var text string
	err := util.Retry(ctx, c.opts.MaxRetries, c.opts.RetryDelay, func(ctx context.Context) error {
		var resp ollamaGenerateResponse
		response, err := c.client.R().
			SetContext(ctx).
			SetBody(req).
			SetResult(&resp).
			Post("/api/generate")
		if err != nil {
			return err
		}
		if response.StatusCode() != 200 {
			return fmt.Errorf("HTTP %d: %s", response.StatusCode(), response.String())
		}

		text = strings.TrimSpace(resp.Response)
		if text == "" {
			return ErrEmptyCompletion
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate failed: %w", err)
	}

	return text, nil
}

// Ping checks that the server answers GET /api/tags
func (c *OllamaClient) Ping(ctx context.Context) error {
	response, err := c.client.R().
		SetContext(ctx).
		Get("/api/tags")
	if err != nil {
		return fmt.Errorf("ollama health check failed: %w", err)
	}
	if response.StatusCode() != 200 {
		return fmt.Errorf("ollama health check failed: HTTP %d", response.StatusCode())
	}
	return nil
}
