// Package config holds the AdvisorDesk configuration: identity, assistant
// tuning knobs, and logging settings. Config lives in a YAML file under the
// workspace (.advisordesk/config.yaml) with environment overrides applied
// on load.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultRelPath is where config is looked up relative to the workspace.
const DefaultRelPath = ".advisordesk/config.yaml"

// Config holds all AdvisorDesk configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	Assistant AssistantConfig `yaml:"assistant"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// AssistantConfig tunes the command pipeline's surrounding behavior. The
// rule corpus itself is compiled in; only thresholds are configurable.
type AssistantConfig struct {
	// Greeting shown when the chat loop starts.
	Greeting string `yaml:"greeting"`

	// MinActionConfidence is the floor below which the chat loop asks the
	// advisor to rephrase instead of acting on an approve/reject/complete.
	MinActionConfidence float64 `yaml:"min_action_confidence"`
}

// LoggingConfig mirrors logging.Options in YAML form.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the baked-in defaults.
func DefaultConfig() Config {
	return Config{
		Name:    "AdvisorDesk",
		Version: "1.0.0",
		Assistant: AssistantConfig{
			Greeting:            "Good morning. Ask me about your tasks, reviews, or clients.",
			MinActionConfidence: 0.8,
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// Load reads config from path, layering file values over defaults and
// environment overrides over both. A missing file is not an error; you get
// defaults plus environment.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadWorkspace loads config from its default location under workspace.
func LoadWorkspace(workspace string) (Config, error) {
	return Load(filepath.Join(workspace, DefaultRelPath))
}

// Save writes the config as YAML, creating parent directories as needed.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// applyEnv layers ADVISORDESK_* environment overrides onto the config.
func (c *Config) applyEnv() {
	if v := os.Getenv("ADVISORDESK_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = b
		}
	}
	if v := os.Getenv("ADVISORDESK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}
