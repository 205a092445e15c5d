package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// LogConfig controls the zap logger
type LogConfig struct {
	Level  string `yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format,omitempty" validate:"omitempty,oneof=json console"`
	// File is where logs go. Empty means stderr for batch commands and
	// nowhere for the interactive screen.
	File string `yaml:"file,omitempty"`
}

type Config struct {
	// Language of the UI text: "bg" or "en". Empty means detect from the system locale.
	Language string `yaml:"language,omitempty" validate:"omitempty,oneof=bg en"`

	// Output is the default output format for calc and replay
	Output string `yaml:"output,omitempty" validate:"omitempty,oneof=table json"`

	// Keys adds or overrides key bindings, e.g. {"f5": "undo"}
	Keys map[string]string `yaml:"keys,omitempty" validate:"dive,keys,required,endkeys,oneof=clear next undo"`

	Log LogConfig `yaml:"log,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultConfigPath returns the default config file path (~/.resto2026/config.yaml)
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".resto2026", "config.yaml")
}

// NewDefaultConfig creates a config with the built-in defaults.
// Use this when no config file exists.
func NewDefaultConfig() *Config {
	keys := make(map[string]string)
	for key, intent := range DefaultKeyMap() {
		keys[key] = string(intent)
	}
	return &Config{
		Output: OutputTable,
		Keys:   keys,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfigOrDefault loads path, falling back to defaults when the file
// does not exist. Any other error is returned.
func LoadConfigOrDefault(path string) (*Config, error) {
	if path == "" {
		return NewDefaultConfig(), nil
	}
	cfg, err := LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewDefaultConfig(), nil
	}
	return cfg, err
}

// Validate checks enumerated settings and key bindings
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "oneof" {
			msgs = append(msgs, fmt.Sprintf("%s: %q is not one of [%s]", fe.Namespace(), fe.Value(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// KeyMap returns the default bindings with the configured overrides applied
func (c *Config) KeyMap() KeyMap {
	if c == nil || len(c.Keys) == 0 {
		return DefaultKeyMap()
	}
	overrides := make(KeyMap, len(c.Keys))
	for key, name := range c.Keys {
		intent, err := ParseIntent(name)
		if err != nil {
			// Validate rejects these; a hand-built Config may still carry them
			continue
		}
		overrides[key] = intent
	}
	return DefaultKeyMap().Merge(overrides)
}

// OutputFormat returns the configured output format, defaulting to table
func (c *Config) OutputFormat() string {
	if c == nil || c.Output == "" {
		return OutputTable
	}
	return c.Output
}
