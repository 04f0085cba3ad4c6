package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Set assigns a configuration value by its YAML key. Nested keys use dot
// notation, e.g. "history.driver".
func Set(cfg *Config, key, value string) error {
	switch key {
	case "api_key":
		cfg.APIKey = value
	case "api_secret":
		cfg.APISecret = value
	case "organization_id":
		cfg.OrgID = value
	case "environment":
		cfg.Environment = value
	case "base_url":
		cfg.BaseURL = value
	case "timeout":
		cfg.Timeout = value
	case "max_retries":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max_retries must be an integer: %s", value)
		}
		cfg.MaxRetries = n
	case "retry_delay":
		cfg.RetryDelay = value
	case "debug":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("debug must be true or false: %s", value)
		}
		cfg.Debug = b
	case "output":
		cfg.Output = value
	case "history.driver":
		cfg.History.Driver = value
	case "history.path":
		cfg.History.Path = value
	case "logging.level":
		cfg.Logging.Level = value
	case "logging.file":
		cfg.Logging.File = value
	default:
		return fmt.Errorf("unknown config key: %s (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

// Keys returns the settable configuration keys
func Keys() []string {
	return []string{
		"api_key", "api_secret", "organization_id", "environment", "base_url",
		"timeout", "max_retries", "retry_delay", "debug", "output",
		"history.driver", "history.path", "logging.level", "logging.file",
	}
}
