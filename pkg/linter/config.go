package linter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultRequiredAttributes lists components whose blocks must set certain attributes
var DefaultRequiredAttributes = map[string][]string{
	"prometheus.exporter.postgres": {"data_source_names"},
}

// ConfigFileNames are searched, in order, by LoadConfigFromDir
var ConfigFileNames = []string{".alloykit.yaml", ".alloykit.yml", "alloykit.yaml", "alloykit.yml"}

// Config represents the project configuration
type Config struct {
	Version            string              `yaml:"version"`
	Rules              map[string]bool     `yaml:"rules"`
	RequiredAttributes map[string][]string `yaml:"required_attributes"`
	Ignore             []string            `yaml:"ignore"`
	Format             FormatConfig        `yaml:"format"`
}

// FormatConfig configures the indentation formatter
type FormatConfig struct {
	Indent string `yaml:"indent"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	required := make(map[string][]string, len(DefaultRequiredAttributes))
	for name, attrs := range DefaultRequiredAttributes {
		required[name] = append([]string(nil), attrs...)
	}

	return &Config{
		Version:            "v1",
		Rules:              make(map[string]bool),
		RequiredAttributes: required,
		Ignore:             []string{".git/**", "vendor/**"},
		Format: FormatConfig{
			Indent: "\t",
		},
	}
}

// RuleEnabled reports whether a rule is enabled. Rules are enabled unless
// explicitly set to false.
func (c *Config) RuleEnabled(name string) bool {
	enabled, ok := c.Rules[name]
	return !ok || enabled
}

// Ignored reports whether a slash-separated relative path matches an ignore pattern.
// A pattern ending in "/**" matches everything below that directory.
func (c *Config) Ignored(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, pattern := range c.Ignore {
		if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
			if relPath == prefix || strings.HasPrefix(relPath, prefix+"/") {
				return true
			}
			continue
		}
		if matched, err := filepath.Match(pattern, relPath); err == nil && matched {
			return true
		}
		if matched, err := filepath.Match(pattern, filepath.Base(relPath)); err == nil && matched {
			return true
		}
	}
	return false
}

// ValidIndent reports whether s is a non-empty run of spaces and tabs
func ValidIndent(s string) bool {
	return s != "" && strings.Trim(s, " \t") == ""
}

// Validate checks the configuration for values the tools cannot use
func (c *Config) Validate() error {
	for name, attrs := range c.RequiredAttributes {
		if name == "" {
			return fmt.Errorf("required_attributes: empty component name")
		}
		for _, attr := range attrs {
			if attr == "" {
				return fmt.Errorf("required_attributes[%s]: empty attribute name", name)
			}
		}
	}
	if c.Format.Indent != "" && !ValidIndent(c.Format.Indent) {
		return fmt.Errorf("format.indent %q: must contain only spaces and tabs", c.Format.Indent)
	}
	for _, pattern := range c.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("ignore pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// LoadConfig loads configuration from a file. Values not present in the
// file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if config.Format.Indent == "" {
		config.Format.Indent = "\t"
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// LoadConfigFromDir searches for a config file in directory
func LoadConfigFromDir(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadConfig(path)
		}
	}

	// Return default if no config found
	return DefaultConfig(), nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
