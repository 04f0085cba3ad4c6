package config

import (
	"fmt"
	"time"

	"github.com/ainative/ainative-go/pkg/ainative"
)

// Config represents the CLI configuration (~/.ainative/config.yaml)
type Config struct {
	APIKey      string        `yaml:"api_key,omitempty" json:"api_key,omitempty"`
	APISecret   string        `yaml:"api_secret,omitempty" json:"api_secret,omitempty"`
	OrgID       string        `yaml:"organization_id,omitempty" json:"organization_id,omitempty"`
	Environment string        `yaml:"environment" json:"environment"`               // production, staging, development, local
	BaseURL     string        `yaml:"base_url,omitempty" json:"base_url,omitempty"` // overrides environment when set
	Timeout     string        `yaml:"timeout" json:"timeout"`                       // e.g., "30s"
	MaxRetries  int           `yaml:"max_retries" json:"max_retries"`
	RetryDelay  string        `yaml:"retry_delay" json:"retry_delay"`
	Debug       bool          `yaml:"debug" json:"debug"`
	Output      string        `yaml:"output" json:"output"` // table, json
	History     HistoryConfig `yaml:"history" json:"history"`
	Logging     LoggingConfig `yaml:"logging" json:"logging"`
}

// HistoryConfig configures the local command journal
type HistoryConfig struct {
	Driver string `yaml:"driver" json:"driver"` // sqlite, memory
	Path   string `yaml:"path" json:"path"`     // database file path
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`                   // debug, info, warn, error
	File  string `yaml:"file,omitempty" json:"file,omitempty"` // empty logs to stderr
}

// ParsedTimeout converts the timeout string to time.Duration
func (c *Config) ParsedTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return ainative.DefaultTimeout, nil
	}
	return time.ParseDuration(c.Timeout)
}

// ParsedRetryDelay converts the retry delay string to time.Duration
func (c *Config) ParsedRetryDelay() (time.Duration, error) {
	if c.RetryDelay == "" {
		return ainative.DefaultRetryDelay, nil
	}
	return time.ParseDuration(c.RetryDelay)
}

// ClientConfig converts the file configuration into client construction
// parameters
func (c *Config) ClientConfig() (ainative.Config, error) {
	timeout, err := c.ParsedTimeout()
	if err != nil {
		return ainative.Config{}, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	delay, err := c.ParsedRetryDelay()
	if err != nil {
		return ainative.Config{}, fmt.Errorf("invalid retry_delay %q: %w", c.RetryDelay, err)
	}

	return ainative.Config{
		APIKey:      c.APIKey,
		APISecret:   c.APISecret,
		OrgID:       c.OrgID,
		BaseURL:     c.BaseURL,
		Environment: c.Environment,
		Timeout:     timeout,
		MaxRetries:  c.MaxRetries,
		RetryDelay:  delay,
		Debug:       c.Debug,
	}, nil
}
