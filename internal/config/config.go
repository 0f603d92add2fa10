// Package config provides YAML-based configuration loading and the
// difficulty tiers used by procedural level generation.
package config

import "time"

// Config contains all configuration for levelgen.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	LLM     LLMConfig     `yaml:"llm"`
	Server  ServerConfig  `yaml:"server"`
	SSH     SSHConfig     `yaml:"ssh"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// ServiceConfig configures the client side of AI-assisted generation.
type ServiceConfig struct {
	URL     string        `yaml:"url"`     // Level server endpoint
	Timeout time.Duration `yaml:"timeout"` // Whole-request deadline; expiry falls back to procedural
}

// LLMConfig configures the language model behind the level server.
type LLMConfig struct {
	Backend     string        `yaml:"backend"` // "groq", "openai" or "gemini"
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"api_key"`
	APIKeyEnv   string        `yaml:"api_key_env"` // Env var consulted when APIKey is empty
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`
}

// ServerConfig configures the HTTP level server.
type ServerConfig struct {
	Address     string `yaml:"address"`
	AllowOrigin string `yaml:"allow_origin"`
}

// SSHConfig configures the SSH studio server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key"` // Auto-generated under ~/.levelgen when empty
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// StorageConfig configures level history persistence.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}
