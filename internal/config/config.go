package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults for generation parameters when the configuration omits them.
const (
	defaultBaseURL     = "https://api.groq.com/openai/v1"
	defaultModel       = "llama-3.1-70b-versatile"
	defaultTemperature = 0.7
	defaultMaxTokens   = 1024
)

// apiKeyEnv overrides groq.api_key when set, so the key can stay out of the
// config file.
const apiKeyEnv = "GROQ_API_KEY"

// Config represents the application configuration parsed from YAML.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Groq   GroqConfig   `yaml:"groq"`
}

// ServerConfig defines listener and cross-origin configuration.
type ServerConfig struct {
	Port int `yaml:"port"`
	// AllowedOrigin is the single origin permitted to call the chat endpoints.
	AllowedOrigin string `yaml:"allowed_origin"`
}

// GroqConfig captures authentication and fixed generation parameters for the
// upstream completion API.
type GroqConfig struct {
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// Load reads YAML configuration from disk, applies environment overrides, and
// validates the result. A .env file next to the process, if present, is loaded
// first so GROQ_API_KEY can live there during development.
func Load(path string) (Config, error) {
	// Missing .env is fine; the environment may already carry the key.
	_ = godotenv.Load()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return Config{}, fmt.Errorf("resolve config path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return Config{}, fmt.Errorf("read config file %q: %w", absPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %q: %w", absPath, err)
	}

	cfg.applyDefaults()

	if key := os.Getenv(apiKeyEnv); key != "" {
		cfg.Groq.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Groq.BaseURL) == "" {
		c.Groq.BaseURL = defaultBaseURL
	}
	if strings.TrimSpace(c.Groq.Model) == "" {
		c.Groq.Model = defaultModel
	}
	if c.Groq.Temperature == 0 {
		c.Groq.Temperature = defaultTemperature
	}
	if c.Groq.MaxTokens == 0 {
		c.Groq.MaxTokens = defaultMaxTokens
	}
}

// Validate performs strict sanity checks on the configuration. A missing API
// key fails here so the process refuses to start rather than degrading at the
// first chat request.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid TCP port, got %d", c.Server.Port)
	}
	if err := validateOrigin(c.Server.AllowedOrigin); err != nil {
		return err
	}

	if strings.TrimSpace(c.Groq.APIKey) == "" {
		return fmt.Errorf("groq.api_key must be provided (or set %s)", apiKeyEnv)
	}
	if strings.TrimSpace(c.Groq.BaseURL) == "" {
		return fmt.Errorf("groq.base_url must be provided")
	}
	if strings.TrimSpace(c.Groq.Model) == "" {
		return fmt.Errorf("groq.model must be provided")
	}
	if c.Groq.Temperature < 0 || c.Groq.Temperature > 2 {
		return fmt.Errorf("groq.temperature must be between 0 and 2, got %g", c.Groq.Temperature)
	}
	if c.Groq.MaxTokens <= 0 {
		return fmt.Errorf("groq.max_tokens must be positive, got %d", c.Groq.MaxTokens)
	}

	return nil
}

func validateOrigin(origin string) error {
	if strings.TrimSpace(origin) == "" {
		return fmt.Errorf("server.allowed_origin must be provided")
	}

	parsed, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("server.allowed_origin %q is not a valid origin: %w", origin, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("server.allowed_origin %q must use http or https", origin)
	}
	if parsed.Host == "" || parsed.Path != "" {
		return fmt.Errorf("server.allowed_origin %q must be scheme://host[:port] with no path", origin)
	}
	return nil
}
