package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ainative/ainative-go/pkg/ainative"
)

// Validate checks the configuration for malformed values
func Validate(cfg *Config) error {
	var errors []string

	if cfg.Environment != "" {
		if _, err := ainative.EnvironmentBaseURL(cfg.Environment); err != nil {
			errors = append(errors, fmt.Sprintf("invalid environment: %s (must be %s)",
				cfg.Environment, strings.Join(ainative.Environments(), ", ")))
		}
	}

	if cfg.Timeout != "" {
		if _, err := time.ParseDuration(cfg.Timeout); err != nil {
			errors = append(errors, fmt.Sprintf("invalid timeout format %q: %s", cfg.Timeout, err))
		}
	}
	if cfg.RetryDelay != "" {
		if _, err := time.ParseDuration(cfg.RetryDelay); err != nil {
			errors = append(errors, fmt.Sprintf("invalid retry_delay format %q: %s", cfg.RetryDelay, err))
		}
	}
	if cfg.MaxRetries < 0 {
		errors = append(errors, "max_retries must be non-negative")
	}

	validOutputs := map[string]bool{
		"table": true,
		"json":  true,
		"":      true, // defaults to table
	}
	if !validOutputs[cfg.Output] {
		errors = append(errors, fmt.Sprintf("invalid output format: %s (must be table or json)", cfg.Output))
	}

	validDrivers := map[string]bool{
		"sqlite": true,
		"memory": true,
		"":       true, // defaults to sqlite
	}
	if !validDrivers[cfg.History.Driver] {
		errors = append(errors, fmt.Sprintf("invalid history driver: %s (must be sqlite or memory)", cfg.History.Driver))
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"":      true, // defaults to info
	}
	if !validLevels[cfg.Logging.Level] {
		errors = append(errors, fmt.Sprintf("invalid logging level: %s", cfg.Logging.Level))
	}

	if len(errors) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errors, "; "))
	}
	return nil
}
