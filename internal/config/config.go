// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"rds-cost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// AWS contains AWS-specific configuration
	AWS AWSConfig `json:"aws"`

	// Pricing contains pricing lookup configuration
	Pricing PricingConfig `json:"pricing"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// AWSConfig contains AWS-specific settings
type AWSConfig struct {
	// DefaultRegion is the region used when none is given on the command line
	DefaultRegion string `json:"default_region"`

	// Profile is the AWS shared-config profile to use
	Profile string `json:"profile,omitempty"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// CacheEnabled enables in-memory pricing caching
	CacheEnabled bool `json:"cache_enabled"`

	// CacheTTLSeconds is how long cached prices stay valid
	CacheTTLSeconds int `json:"cache_ttl_seconds"`

	// MaxConcurrentFetches bounds parallel Pricing API calls
	MaxConcurrentFetches int `json:"max_concurrent_fetches"`

	// ReservedFallback enables the RDS offering fallback for missing RI prices
	ReservedFallback bool `json:"reserved_fallback"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json, markdown)
	DefaultFormat string `json:"default_format"`

	// ShowDetails shows the per-option cost breakdown
	ShowDetails bool `json:"show_details"`

	// TemplatePath overrides the built-in markdown report template
	TemplatePath string `json:"template_path,omitempty"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		AWS: AWSConfig{
			DefaultRegion: "ap-northeast-2",
		},
		Pricing: PricingConfig{
			CacheEnabled:         true,
			CacheTTLSeconds:      86400, // 24 hours
			MaxConcurrentFetches: 8,
			ReservedFallback:     true,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowDetails:   true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
