// Package config provides unified configuration loading for hargamobil.
// Supports YAML files, environment variables, and built-in defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for hargamobil.
type Config struct {
	Dataset       DatasetConfig       `yaml:"dataset"`
	LLM           LLMConfig           `yaml:"llm"`
	QueryLog      QueryLogConfig      `yaml:"query_log"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// DatasetConfig holds price sheet settings.
type DatasetConfig struct {
	Path string `yaml:"path"`
}

// LLMConfig holds completion service settings. An empty endpoint or API key
// disables the model path entirely; extraction then runs rule-based only.
type LLMConfig struct {
	Endpoint  string        `yaml:"endpoint"`
	APIKey    string        `yaml:"api_key"`
	Model     string        `yaml:"model"`
	MaxTokens int           `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout"`
}

// QueryLogConfig holds query log sink settings.
type QueryLogConfig struct {
	Driver string `yaml:"driver"` // csv or sqlite
	Path   string `yaml:"path"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads configuration from a YAML file and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults for development.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path: "summary_otr.csv",
		},
		LLM: LLMConfig{
			Model:     "gpt-4o-mini",
			MaxTokens: 150,
			Timeout:   30 * time.Second,
		},
		QueryLog: QueryLogConfig{
			Driver: "csv",
			Path:   "query_log.csv",
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "console",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset path is required")
	}

	if c.QueryLog.Driver != "csv" && c.QueryLog.Driver != "sqlite" {
		return fmt.Errorf("invalid query log driver: %s", c.QueryLog.Driver)
	}

	if c.QueryLog.Path == "" {
		return fmt.Errorf("query log path is required")
	}

	if c.LLM.MaxTokens < 1 {
		return fmt.Errorf("llm max_tokens must be positive")
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATASET_PATH"); v != "" {
		cfg.Dataset.Path = v
	}

	if v := os.Getenv("LLM_ENDPOINT"); v != "" {
		cfg.LLM.Endpoint = v
	}

	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}

	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}

	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LLM.MaxTokens = n
		}
	}

	if v := os.Getenv("QUERY_LOG_DRIVER"); v != "" {
		cfg.QueryLog.Driver = v
	}

	if v := os.Getenv("QUERY_LOG_PATH"); v != "" {
		cfg.QueryLog.Path = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}
