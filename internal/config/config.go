package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LLMConfig contains all LLM integration related settings. The API keys are
// server-side fallbacks; requests may carry their own keys in the triage
// settings and those take precedence.
type LLMConfig struct {
	GeminiAPIKey      string        `mapstructure:"gemini_api_key"`
	SiliconFlowAPIKey string        `mapstructure:"siliconflow_api_key"`
	MaxRetries        int           `mapstructure:"max_retries" validate:"required,gte=1,lte=10"`
	RetryDelay        time.Duration `mapstructure:"retry_delay" validate:"required"`
}
