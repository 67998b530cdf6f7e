package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Output formats understood by the renderers.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

type Config struct {
	Output   string `yaml:"output"`
	LogLevel string `yaml:"log_level"`
	Color    bool   `yaml:"color"`
}

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		Output:   OutputTable,
		LogLevel: "warn",
		Color:    true,
	}
}

// DefaultPath returns $HOME/.redb/typectl.yaml, falling back to the working
// directory when no home directory is available.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "typectl.yaml"
	}
	return filepath.Join(home, ".redb", "typectl.yaml")
}

// Load reads configFile, creating it with defaults if it does not exist.
// A non-empty output replaces the file's output format before validation.
func Load(configFile, output string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(configFile); err == nil {
		//nolint:gosec // path comes from the --config flag
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(configFile), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal default config: %w", err)
		}
		if err := os.WriteFile(configFile, data, 0o600); err != nil {
			return nil, fmt.Errorf("failed to write default config file: %w", err)
		}
	}

	if output != "" {
		cfg.Output = output
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}
	return cfg, nil
}

// Validate checks that the output format is one the CLI can render.
func (c *Config) Validate() error {
	return ValidateOutput(c.Output)
}

// ValidateOutput rejects unknown output formats.
func ValidateOutput(format string) error {
	switch format {
	case OutputTable, OutputJSON, OutputYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want %s, %s or %s)", format, OutputTable, OutputJSON, OutputYAML)
	}
}
