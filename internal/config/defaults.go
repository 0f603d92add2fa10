package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/levelgen.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration, used when the embedded
// defaults cannot be parsed.
func Default() Config {
	return Config{
		Service: ServiceConfig{
			URL:     "http://localhost:3002/generate-level",
			Timeout: 30 * time.Second,
		},
		LLM: LLMConfig{
			Backend:     "groq",
			APIKeyEnv:   "GROQ_API_KEY",
			Temperature: 0.8,
			MaxTokens:   1024,
			Timeout:     60 * time.Second,
		},
		Server: ServerConfig{
			Address:     ":3002",
			AllowOrigin: "*",
		},
		SSH: SSHConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
		Storage: StorageConfig{
			Path: "~/.levelgen/levels.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
