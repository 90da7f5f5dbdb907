package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Inference InferenceConfig `mapstructure:"inference" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Path is the location of the SQLite database file. The file is
	// created on first run if it does not exist.
	Path string `mapstructure:"path" validate:"required"`
}

// InferenceConfig contains settings for the remote zero-shot
// classification endpoint used to suggest task priorities.
type InferenceConfig struct {
	// APIToken is the HuggingFace API token. It is optional: without it
	// the endpoint is called unauthenticated (subject to stricter rate
	// limits), and any failure still falls back to the local heuristic.
	APIToken string `mapstructure:"api_token"`

	// ModelURL is the full inference endpoint URL for the zero-shot
	// classification model.
	ModelURL string `mapstructure:"model_url" validate:"required,url"`

	// TimeoutSeconds bounds each classification request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0,lte=60"`

	// Disabled skips the remote call entirely and always uses the local
	// heuristic. Useful for development and tests.
	Disabled bool `mapstructure:"disabled"`
}
