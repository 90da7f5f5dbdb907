package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultModelURL is the zero-shot classification endpoint used when no
// override is configured. facebook/bart-large-mnli is a free hosted
// model that works without an API token for light usage.
const DefaultModelURL = "https://api-inference.huggingface.co/models/facebook/bart-large-mnli"

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults; everything can be overridden via config file or env.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.path", "tasks.db")
	v.SetDefault("inference.model_url", DefaultModelURL)
	v.SetDefault("inference.timeout_seconds", 10)
	v.SetDefault("inference.disabled", false)

	// Optional config file in the working directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; a malformed one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables with TASKLIST_ prefix, e.g.
	// TASKLIST_SERVER_PORT, TASKLIST_DATABASE_PATH.
	v.SetEnvPrefix("TASKLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// HUGGINGFACEHUB_API_TOKEN is the conventional variable for the
	// HuggingFace credential, so it is bound explicitly in addition to
	// TASKLIST_INFERENCE_API_TOKEN.
	if err := v.BindEnv("inference.api_token", "TASKLIST_INFERENCE_API_TOKEN", "HUGGINGFACEHUB_API_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind credential env var: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
