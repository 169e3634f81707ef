// Package config provides configuration loading and management for specdoc.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete specdoc configuration
type Config struct {
	Template TemplateConfig `yaml:"template"`
	Docs     DocsConfig     `yaml:"docs"`
	List     ListConfig     `yaml:"list"`
	Root     RootConfig     `yaml:"root"`
	Output   OutputConfig   `yaml:"output"`
}

// TemplateConfig configures the HTML skeleton
type TemplateConfig struct {
	// Dir is the directory holding template.html and style.css
	Dir string `yaml:"dir"`
	// StyleURI is the stylesheet URI substituted into the page
	StyleURI string `yaml:"style_uri"`
}

// DocsConfig configures code documentation linking
type DocsConfig struct {
	// Dir is the generated API documentation directory (empty = no code links)
	Dir string `yaml:"dir"`
	// Tags is the Doxygen tag file the link map is built from
	Tags string `yaml:"tags"`
}

// ListConfig configures the mailing-list row
type ListConfig struct {
	// Email is the list address (empty = no row)
	Email string `yaml:"email"`
	// Page is the list subscription page
	Page string `yaml:"page"`
}

// RootConfig configures links back to the specification collection
type RootConfig struct {
	// Path is the root output path for relative links
	Path string `yaml:"path"`
	// URI is the root URI specifications are published under
	URI string `yaml:"uri"`
}

// OutputConfig configures output behavior
type OutputConfig struct {
	// Instances controls whether instance terms are documented
	Instances bool `yaml:"instances"`
	// CopyStyle copies style.css from the template dir next to the output
	CopyStyle bool `yaml:"copy_style"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Template: TemplateConfig{
			Dir:      "",
			StyleURI: "style.css",
		},
		Output: OutputConfig{
			Instances: true,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Template.StyleURI == "" {
		return fmt.Errorf("template.style_uri is required")
	}
	if c.Docs.Tags != "" && c.Docs.Dir == "" {
		return fmt.Errorf("docs.dir is required when docs.tags is set")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Template.Dir != "" {
		c.Template.Dir = other.Template.Dir
	}
	if other.Template.StyleURI != "" {
		c.Template.StyleURI = other.Template.StyleURI
	}

	if other.Docs.Dir != "" {
		c.Docs.Dir = other.Docs.Dir
	}
	if other.Docs.Tags != "" {
		c.Docs.Tags = other.Docs.Tags
	}

	if other.List.Email != "" {
		c.List.Email = other.List.Email
	}
	if other.List.Page != "" {
		c.List.Page = other.List.Page
	}

	if other.Root.Path != "" {
		c.Root.Path = other.Root.Path
	}
	if other.Root.URI != "" {
		c.Root.URI = other.Root.URI
	}

	if other.Output.Instances {
		c.Output.Instances = true
	}
	if other.Output.CopyStyle {
		c.Output.CopyStyle = true
	}
}
