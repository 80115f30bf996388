package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm"       validate:"required"`
	Estimator EstimatorConfig `mapstructure:"estimator" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains the backend adapter settings. API keys are supplied
// out-of-band through the environment; an adapter whose key is absent is
// simply not registered, and requests naming it fail with a typed
// configuration error.
type LLMConfig struct {
	DefaultProvider string  `mapstructure:"default_provider" validate:"required"`
	Temperature     float32 `mapstructure:"temperature"      validate:"gte=0,lte=2"`

	MaxAttempts           int `mapstructure:"max_attempts"            validate:"required,gte=1,lte=10"`
	RetryBaseDelaySeconds int `mapstructure:"retry_base_delay_seconds" validate:"required,gte=1"`
	RetryMaxDelaySeconds  int `mapstructure:"retry_max_delay_seconds"  validate:"required,gte=1"`
	TimeoutSeconds        int `mapstructure:"timeout_seconds"          validate:"required,gte=1"`

	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`
	AnthropicModel  string `mapstructure:"anthropic_model"`

	OpenAIAPIKey string `mapstructure:"openai_api_key"`
	OpenAIModel  string `mapstructure:"openai_model"`

	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"`

	OllamaURL   string `mapstructure:"ollama_url"`
	OllamaModel string `mapstructure:"ollama_model"`
}

// Timeout returns the per-attempt request timeout as a duration.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetryBaseDelay returns the initial backoff delay as a duration.
func (c LLMConfig) RetryBaseDelay() time.Duration {
	return time.Duration(c.RetryBaseDelaySeconds) * time.Second
}

// RetryMaxDelay returns the backoff delay cap as a duration.
func (c LLMConfig) RetryMaxDelay() time.Duration {
	return time.Duration(c.RetryMaxDelaySeconds) * time.Second
}

// EstimatorConfig contains the pair count estimator thresholds. These are
// tuning knobs, not contract: the only guarantees are the floor, the cap,
// and monotonic scaling in between.
type EstimatorConfig struct {
	MinPairs              int `mapstructure:"min_pairs"                validate:"required,gte=1"`
	MaxPairs              int `mapstructure:"max_pairs"                validate:"required,gtefield=MinPairs"`
	PairsPerThousandWords int `mapstructure:"pairs_per_thousand_words" validate:"required,gte=1"`
}
