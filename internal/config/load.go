package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for all environment variables the application
// reads (e.g. PAIRFORGE_LLM_ANTHROPIC_API_KEY).
const envPrefix = "PAIRFORGE"

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over file values. Returns a populated, validated Config or
// an error describing what failed.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; the environment is enough.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface nested keys during Unmarshal,
	// so every key is bound explicitly.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"llm.default_provider",
		"llm.temperature",
		"llm.max_attempts",
		"llm.retry_base_delay_seconds",
		"llm.retry_max_delay_seconds",
		"llm.timeout_seconds",
		"llm.anthropic_api_key",
		"llm.anthropic_model",
		"llm.openai_api_key",
		"llm.openai_model",
		"llm.gemini_api_key",
		"llm.gemini_model",
		"llm.ollama_url",
		"llm.ollama_model",
		"estimator.min_pairs",
		"estimator.max_pairs",
		"estimator.pairs_per_thousand_words",
	} {
		envVar := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults installs the defaults applied when neither the environment
// nor a config file provides a value.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("llm.default_provider", "anthropic")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_attempts", 3)
	v.SetDefault("llm.retry_base_delay_seconds", 2)
	v.SetDefault("llm.retry_max_delay_seconds", 10)
	v.SetDefault("llm.timeout_seconds", 60)
	v.SetDefault("llm.ollama_url", "http://localhost:11434")

	v.SetDefault("estimator.min_pairs", 5)
	v.SetDefault("estimator.max_pairs", 50)
	v.SetDefault("estimator.pairs_per_thousand_words", 4)
}
