package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted when no config flag is given.
const EnvConfigPath = "SNAKEPILOT_CONFIG"

// Pilot holds the configuration of the pilot command.
type Pilot struct {
	FieldSize int    `yaml:"field_size"`
	LogLevel  string `yaml:"log_level"`

	Journal JournalConfig `yaml:"journal"`

	// Lua script defining nextCoordinate(head, meal, cells), used when the meal is unreachable.
	FallbackScript string `yaml:"fallback_script"`
}

// JournalConfig controls the SQLite move journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DefaultPilot returns Pilot config with sensible defaults.
func DefaultPilot() Pilot {
	return Pilot{
		FieldSize: 20,
		LogLevel:  "info",
		Journal: JournalConfig{
			Enabled: false,
			Path:    "moves.db",
		},
	}
}

// LoadPilot loads pilot config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadPilot(path string) (Pilot, error) {
	cfg := DefaultPilot()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.FieldSize < 0 {
		return cfg, fmt.Errorf("config %s: field_size must not be negative, got %d", path, cfg.FieldSize)
	}

	return cfg, nil
}

// ResolvePath picks the flag value, then the environment, then the default file name.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(EnvConfigPath); envValue != "" {
		return envValue
	}
	return "snakepilot.yaml"
}
