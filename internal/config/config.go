// ABOUTME: Centralized configuration for the daily coach
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all configuration for the coach
type Config struct {
	// Storage settings
	DBPath string

	// HTTP settings
	ListenAddr string `validate:"required"`

	// Completion service settings
	LLMProvider    string `validate:"oneof=ollama openai"`
	LLMBaseURL     string `validate:"required,url"`
	LLMModel       string `validate:"required"`
	LLMAPIKey      string
	LLMTimeout     time.Duration `validate:"gt=0"`
	LLMMaxRetries  int           `validate:"min=0,max=10"`
	LLMRetryDelay  time.Duration `validate:"min=0"`
	LLMTemperature float64       `validate:"min=0,max=2"`
	LLMMaxTokens   int           `validate:"gt=0"`

	// Prompt settings
	PromptContextChars int `validate:"gt=0"`

	// Logging settings
	LogLevel  string
	LogFormat string `validate:"oneof=text json"`

	// Charm settings
	CharmHost   string
	CharmDBName string
	AutoSync    bool
}

// envNames maps config fields to the variables that set them, for error messages
var envNames = map[string]string{
	"ListenAddr":         "COACH_LISTEN_ADDR",
	"LLMProvider":        "COACH_LLM_PROVIDER",
	"LLMBaseURL":         "COACH_LLM_BASE_URL",
	"LLMModel":           "COACH_LLM_MODEL",
	"LLMTimeout":         "COACH_LLM_TIMEOUT",
	"LLMMaxRetries":      "COACH_LLM_MAX_RETRIES",
	"LLMRetryDelay":      "COACH_LLM_RETRY_DELAY",
	"LLMTemperature":     "COACH_LLM_TEMPERATURE",
	"LLMMaxTokens":       "COACH_LLM_MAX_TOKENS",
	"PromptContextChars": "COACH_PROMPT_CONTEXT_CHARS",
	"LogFormat":          "COACH_LOG_FORMAT",
}

var validate = validator.New()

// Load reads configuration from environment variables
func Load() (*Config, error) {
	apiKey := os.Getenv("COACH_LLM_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	cfg := &Config{
		// Defaults
		DBPath:             os.Getenv("COACH_DB_PATH"),
		ListenAddr:         getEnv("COACH_LISTEN_ADDR", "127.0.0.1:8000"),
		LLMProvider:        getEnv("COACH_LLM_PROVIDER", "ollama"),
		LLMBaseURL:         getEnv("COACH_LLM_BASE_URL", "http://localhost:11434"),
		LLMModel:           getEnv("COACH_LLM_MODEL", "llama3.2:1b"),
		LLMAPIKey:          apiKey,
		LLMTimeout:         getEnvDuration("COACH_LLM_TIMEOUT", 15*time.Second),
		LLMMaxRetries:      getEnvInt("COACH_LLM_MAX_RETRIES", 1),
		LLMRetryDelay:      getEnvDuration("COACH_LLM_RETRY_DELAY", 500*time.Millisecond),
		LLMTemperature:     getEnvFloat("COACH_LLM_TEMPERATURE", 0.5),
		LLMMaxTokens:       getEnvInt("COACH_LLM_MAX_TOKENS", 100),
		PromptContextChars: getEnvInt("COACH_PROMPT_CONTEXT_CHARS", 600),
		LogLevel:           getEnv("COACH_LOG_LEVEL", "info"),
		LogFormat:          getEnv("COACH_LOG_FORMAT", "text"),
		CharmHost:          getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:        getEnv("CHARM_DB", "coach"),
		AutoSync:           getEnvBool("CHARM_AUTO_SYNC", true),
	}

	return cfg, cfg.Validate()
}

// Validate checks every bounded setting and reports the first violation
// using the name of the environment variable that controls it
func (c *Config) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("COACH_LOG_LEVEL: %w", err)
	}

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	name := envNames[fe.Field()]
	if name == "" {
		name = fe.Field()
	}
	switch fe.Tag() {
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %v", name, fe.Param(), fe.Value())
	case "min", "max":
		return fmt.Errorf("%s out of range (%s=%s), got %v", name, fe.Tag(), fe.Param(), fe.Value())
	case "gt":
		return fmt.Errorf("%s must be greater than %s, got %v", name, fe.Param(), fe.Value())
	default:
		return fmt.Errorf("%s is invalid (%s), got %v", name, fe.Tag(), fe.Value())
	}
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
