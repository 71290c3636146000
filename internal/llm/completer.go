// ABOUTME: Text-completion capability used by the reply composer
// ABOUTME: Provider factory for the native Ollama and OpenAI-compatible clients
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harper/daily-coach/internal/config"
)

const (
	// DefaultTopP is the nucleus sampling bound sent with every request
	DefaultTopP = 0.9
	// DefaultRepeatPenalty discourages the small local models from looping
	DefaultRepeatPenalty = 1.1
)

// ErrEmptyCompletion is returned when the service answered without text
var ErrEmptyCompletion = errors.New("completion service returned no text")

// Completer turns a prompt into generated text
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	// Ping reports whether the completion service is reachable
	Ping(ctx context.Context) error
	Name() string
}

// CompleterFunc adapts a function to the Completer interface. Ping always
// succeeds.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Ping always succeeds
func (f CompleterFunc) Ping(ctx context.Context) error { return nil }

// Name identifies the adapter in logs
func (f CompleterFunc) Name() string { return "func" }

// Options holds the settings shared by every provider
type Options struct {
	Provider      string
	BaseURL       string
	Model         string
	APIKey        string
	Temperature   float32
	TopP          float32
	RepeatPenalty float32
	MaxTokens     int
	MaxRetries    int
	RetryDelay    time.Duration
}

// OptionsFromConfig derives client options from the loaded configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Provider:      cfg.LLMProvider,
		BaseURL:       cfg.LLMBaseURL,
		Model:         cfg.LLMModel,
		APIKey:        cfg.LLMAPIKey,
		Temperature:   float32(cfg.LLMTemperature),
		TopP:          DefaultTopP,
		RepeatPenalty: DefaultRepeatPenalty,
		MaxTokens:     cfg.LLMMaxTokens,
		MaxRetries:    cfg.LLMMaxRetries,
		RetryDelay:    cfg.LLMRetryDelay,
	}
}

// New creates the Completer selected by opts.Provider
func New(opts Options) (Completer, error) {
	switch strings.ToLower(opts.Provider) {
	case "", "ollama":
		return NewOllamaClient(opts)
	case "openai":
		return NewOpenAIClient(opts)
	default:
		return nil, fmt.Errorf("unsupported completion provider: %s", opts.Provider)
	}
}
