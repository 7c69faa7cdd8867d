// Package configuration manages the persistent application configuration
// stored under ~/.docify.
package configuration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	ConfigVersion  = "1.0"
	ConfigDirName  = ".docify"
	ConfigFileName = "config.json"
)

// Supported documentation providers.
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Config is the unified application configuration.
type Config struct {
	Version string `json:"version"`

	// Provider and model selection
	Provider    string `json:"provider"`
	GeminiModel string `json:"gemini_model"`
	OllamaModel string `json:"ollama_model,omitempty"`

	// Destination document
	DocID              string `json:"doc_id"`
	ServiceAccountFile string `json:"service_account_file,omitempty"`

	// Author attribution used in prompts
	FullName string `json:"full_name,omitempty"`

	// HTTP API
	ServerPort int `json:"server_port,omitempty"`

	// API timeout in seconds for provider and document calls
	APITimeoutSeconds int `json:"api_timeout_seconds,omitempty"`

	// SkipPrompt disables interactive confirmation prompts
	SkipPrompt bool `json:"skip_prompt,omitempty"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:           ConfigVersion,
		Provider:          ProviderGemini,
		GeminiModel:       "gemini-2.5-flash",
		OllamaModel:       "llama3.1",
		ServerPort:        8000,
		APITimeoutSeconds: 120,
	}
}

// ConfigDir returns the absolute path of the configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ConfigDirName), nil
}

// Load reads the configuration file, returning defaults when none exists.
func Load() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, ConfigFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to disk, creating the directory if needed.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0644); err != nil {
		return fmt.Errorf("could not write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.GeminiModel == "" {
			return fmt.Errorf("gemini model cannot be empty when the gemini provider is selected")
		}
	case ProviderOllama:
		if c.OllamaModel == "" {
			return fmt.Errorf("ollama model cannot be empty when the ollama provider is selected")
		}
	default:
		return fmt.Errorf("unknown provider %q (expected %s or %s)", c.Provider, ProviderGemini, ProviderOllama)
	}
	if c.ServerPort < 0 || c.ServerPort > 65535 {
		return fmt.Errorf("server port %d out of range", c.ServerPort)
	}
	if c.APITimeoutSeconds < 0 {
		return fmt.Errorf("api timeout cannot be negative")
	}
	return nil
}

// APITimeout returns the configured timeout as a duration.
func (c *Config) APITimeout() time.Duration {
	if c.APITimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

// ServiceAccountPath resolves the service account file, preferring the
// config value and falling back to the SERVICE_ACCOUNT_FILE environment
// variable.
func (c *Config) ServiceAccountPath() string {
	if c.ServiceAccountFile != "" {
		return c.ServiceAccountFile
	}
	return os.Getenv("SERVICE_ACCOUNT_FILE")
}

// ResolveDocID returns the explicit override when given, otherwise the
// configured document, falling back to the DOC_ID environment variable.
func (c *Config) ResolveDocID(override string) string {
	if override != "" {
		return override
	}
	if c.DocID != "" {
		return c.DocID
	}
	return os.Getenv("DOC_ID")
}
