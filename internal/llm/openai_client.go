// ABOUTME: OpenAI-compatible completion client
// ABOUTME: Works against api.openai.com or any /v1 endpoint such as Ollama's
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/daily-coach/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient wraps the OpenAI API client with retry logic
type OpenAIClient struct {
	client *openai.Client
	opts   Options
}

// NewOpenAIClient creates a client for opts.BaseURL (empty means api.openai.com)
func NewOpenAIClient(opts Options) (*OpenAIClient, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("API key is required for the openai provider")
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	clientConfig := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		opts:   opts,
	}, nil
}

// GetClient returns the underlying OpenAI client for direct use
func (c *OpenAIClient) GetClient() *openai.Client {
	return c.client
}

// Name identifies the provider in logs
func (c *OpenAIClient) Name() string {
	return "openai"
}

// Complete sends prompt as a single user message and returns the first choice
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	var text string

	err := util.Retry(ctx, c.opts.MaxRetries, c.opts.RetryDelay, func(ctx context.Context) error {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.opts.Model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: c.opts.Temperature,
			TopP:        c.opts.TopP,
			MaxTokens:   c.opts.MaxTokens,
		})
		if err != nil {
			return err
		}

		if len(resp.Choices) == 0 {
			return fmt.Errorf("no completion choices returned")
		}

		text = strings.TrimSpace(resp.Choices[0].Message.Content)
		if text == "" {
			return ErrEmptyCompletion
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}

	return text, nil
}

// Ping lists models to check the endpoint and key
func (c *OpenAIClient) Ping(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("openai health check failed: %w", err)
	}
	return nil
}
