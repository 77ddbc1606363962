// Package config loads process configuration.
//
// Precedence, lowest to highest: built-in defaults, an optional
// zonebridge.yaml next to the working directory, .env / .env.local files
// (which never override variables already exported), then the process
// environment itself.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is probed relative to the working directory.
const DefaultConfigFile = "zonebridge.yaml"

// Config is the full configuration surface.
type Config struct {
	// BackendURL is the base URL of the projects REST backend.
	BackendURL string `yaml:"backendUrl"`
	// BackendAPIKey, when set, is forwarded as the x-api-key header.
	BackendAPIKey string `yaml:"backendApiKey"`
	// RequestTimeout bounds every outbound backend and LLM call.
	RequestTimeout time.Duration `yaml:"-"`
	// RequestTimeoutMS is the YAML-facing spelling of RequestTimeout.
	RequestTimeoutMS int `yaml:"requestTimeoutMs"`
	// OpenAIKey is the bearer credential for the completion API. Empty
	// means AI features are off: ai.summarize and /chat fail
	// NotConfigured, and get skips its notes summary.
	OpenAIKey string `yaml:"openaiApiKey"`
	// OpenAIModel is the completion model name.
	OpenAIModel string `yaml:"openaiModel"`
	// BridgePort is the HTTP bridge listen port.
	BridgePort int `yaml:"bridgePort"`
	// AuditDBPath, when set, enables the SQLite invocation audit log.
	AuditDBPath string `yaml:"auditDbPath"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		BackendURL:       "http://localhost:3333",
		RequestTimeoutMS: 10000,
		OpenAIModel:      "gpt-4o-mini",
		BridgePort:       4545,
	}
}

// Load builds the configuration with full precedence applied.
func Load() (Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(DefaultConfigFile); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("malformed %s: %w", DefaultConfigFile, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("reading %s: %w", DefaultConfigFile, err)
	}

	// godotenv.Load never overrides variables already present in the
	// environment, which is exactly the precedence we want.
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err == nil {
			if err := godotenv.Load(name); err != nil {
				return Config{}, fmt.Errorf("loading %s: %w", name, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutMS) * time.Millisecond
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("BACKEND_URL")); v != "" {
		cfg.BackendURL = v
	}
	if v := strings.TrimSpace(os.Getenv("BACKEND_API_KEY")); v != "" {
		cfg.BackendAPIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("REQUEST_TIMEOUT_MS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RequestTimeoutMS = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		cfg.OpenAIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_MODEL")); v != "" {
		cfg.OpenAIModel = v
	}
	if v := strings.TrimSpace(os.Getenv("BRIDGE_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BridgePort = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("AUDIT_DB_PATH")); v != "" {
		cfg.AuditDBPath = v
	}
}

func (c Config) validate() error {
	if strings.TrimSpace(c.BackendURL) == "" {
		return fmt.Errorf("backend URL cannot be empty")
	}
	if c.RequestTimeoutMS <= 0 {
		return fmt.Errorf("request timeout must be positive, got %dms", c.RequestTimeoutMS)
	}
	if c.BridgePort < 1 || c.BridgePort > 65535 {
		return fmt.Errorf("bridge port must be between 1 and 65535, got %d", c.BridgePort)
	}
	return nil
}
