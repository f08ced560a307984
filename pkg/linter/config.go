package linter

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Parser types accepted in ParserConfig.Type
const (
	ParserStructure = "structure"
	ParserCommand   = "command"
)

// ConfigFileNames are searched in order by LoadConfigFromDir
var ConfigFileNames = []string{".declint.yml", ".declint.yaml", "declint.yml", "declint.yaml"}

// Config represents the linting configuration
type Config struct {
	Version       string   `yaml:"version"`
	DisabledRules []string `yaml:"disabled_rules"`
	OnlyRules     []string `yaml:"only_rules"`
	Excluded      []string `yaml:"excluded"` // paths relative to the lint root

	Parser   ParserConfig `yaml:"parser"`
	Workers  int          `yaml:"workers"`
	MemoSize int          `yaml:"memo_size"`

	DocumentationComments DocumentationConfig `yaml:"documentation_comments"`

	// Threshold overrides. An empty list keeps the rule's default parameters.
	VariableNameMinLength []RuleParameter `yaml:"variable_name_min_length,omitempty"`
	VariableNameMaxLength []RuleParameter `yaml:"variable_name_max_length,omitempty"`
	TypeNameMinLength     []RuleParameter `yaml:"type_name_min_length,omitempty"`
	TypeNameMaxLength     []RuleParameter `yaml:"type_name_max_length,omitempty"`

	Logging LoggingConfig `yaml:"logging"`
}

// ParserConfig selects how declaration trees are obtained
type ParserConfig struct {
	Type    string   `yaml:"type"`    // "structure" (default) or "command"
	Suffix  string   `yaml:"suffix"`  // structure document suffix
	Command []string `yaml:"command"` // external tool, source path appended
}

// DocumentationConfig configures the documentation_comments rule
type DocumentationConfig struct {
	CachePath string   `yaml:"cache_path"`
	Blacklist []string `yaml:"blacklist"` // extra patterns appended to the defaults
}

// LoggingConfig configures the library logger
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns default linting configuration
func DefaultConfig() *Config {
	return &Config{
		Version:       "v1",
		DisabledRules: []string{},
		OnlyRules:     []string{},
		Excluded:      []string{"Pods", "Carthage"},
		Parser: ParserConfig{
			Type:   ParserStructure,
			Suffix: ".structure.json",
		},
		Workers:  4,
		MemoSize: 256,
		DocumentationComments: DocumentationConfig{
			CachePath: ".protocols_cache.json",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

var thresholdRules = []string{
	"variable_name_min_length",
	"variable_name_max_length",
	"type_name_min_length",
	"type_name_max_length",
}

// RuleParameters returns the configured parameter override for a rule, or nil
func (c *Config) RuleParameters(rule string) []RuleParameter {
	switch rule {
	case "variable_name_min_length":
		return c.VariableNameMinLength
	case "variable_name_max_length":
		return c.VariableNameMaxLength
	case "type_name_min_length":
		return c.TypeNameMinLength
	case "type_name_max_length":
		return c.TypeNameMaxLength
	}
	return nil
}

// Validate reports the first configuration error. Threshold severities are rewritten to
// their canonical lowercase form.
func (c *Config) Validate() error {
	for _, rule := range thresholdRules {
		params := c.RuleParameters(rule)
		for i := range params {
			severity, err := ParseSeverity(string(params[i].Severity))
			if err != nil {
				return fmt.Errorf("%s[%d]: %w", rule, i, err)
			}
			params[i].Severity = severity
			if params[i].Value <= 0 {
				return fmt.Errorf("%s[%d]: threshold must be positive, got %d", rule, i, params[i].Value)
			}
		}
	}

	switch c.Parser.Type {
	case "", ParserStructure, ParserCommand:
	default:
		return fmt.Errorf("unknown parser type %q", c.Parser.Type)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.MemoSize < 0 {
		return fmt.Errorf("memo_size must not be negative, got %d", c.MemoSize)
	}
	return nil
}

// ApplyEnv applies environment overrides
func (c *Config) ApplyEnv() {
	if v := os.Getenv("DECLINT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("DECLINT_PROTOCOL_CACHE"); v != "" {
		c.DocumentationComments.CachePath = v
	}
	if v := os.Getenv("DECLINT_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
}

// LoadConfig loads configuration from a file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	config.ApplyEnv()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// LoadConfigFromDir searches for config file in directory
func LoadConfigFromDir(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadConfig(path)
		}
	}

	// Return default if no config found
	config := DefaultConfig()
	config.ApplyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
