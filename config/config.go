// Package config loads the settings of the boolexpr command line tool.
//
// Settings can be written either in YAML (".yaml" or ".yml" files) or in TOML (".toml" files).
// A typical YAML file looks like:
//
//	prompt: "bool> "
//	color: auto
//	log:
//	  level: debug
//	  format: json
//	assignments:
//	  a: true
//	  b: false
//	definitions:
//	  imp: "-a v b"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Accepted values for Config.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the settings of a boolexpr session.
type Config struct {
	// Prompt is printed before each line read in interactive mode.
	Prompt string `yaml:"prompt" toml:"prompt"`
	// Color is one of "auto", "always" or "never".
	Color string `yaml:"color" toml:"color"`
	// Log configures diagnostics, written on stderr.
	Log LogConfig `yaml:"log" toml:"log"`
	// Assignments are the variables bound when the session starts.
	Assignments map[string]bool `yaml:"assignments" toml:"assignments"`
	// Definitions are the named formulas stored when the session starts.
	Definitions map[string]string `yaml:"definitions" toml:"definitions"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn or error
	Format string `yaml:"format" toml:"format"` // text or json
}

// Default returns the default configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Prompt == "" {
		cfg.Prompt = "> "
	}
	if cfg.Color == "" {
		cfg.Color = ColorAuto
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// Load reads the configuration file at path.
// The file format is chosen according to the file extension.
// Missing settings get their default value, and the result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("could not parse YAML config %q: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("could not parse TOML config %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("invalid config file format for %q", path)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks all settings have an acceptable value.
// Formulas in Definitions are not parsed here.
func (cfg *Config) Validate() error {
	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of auto, always or never, got %q", cfg.Color)
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", cfg.Log.Format)
	}
	for name := range cfg.Assignments {
		if len(name) != 1 || name[0] < 'a' || name[0] > 'z' {
			return fmt.Errorf("assigned variable %q is not a lowercase letter", name)
		}
		if name == "v" {
			return fmt.Errorf("assigned variable %q reads as the or operator", name)
		}
	}
	return nil
}
