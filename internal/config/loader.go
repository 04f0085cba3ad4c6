package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/ainative/ainative-go/pkg/ainative"
)

const configFileName = "config.yaml"

// EnvConfigDir overrides the configuration directory, mainly for tests.
const EnvConfigDir = "AINATIVE_CONFIG_DIR"

// DefaultDir returns the per-user configuration directory
func DefaultDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".ainative"), nil
}

// Load loads the CLI configuration from dir
func Load(dir string) (*Config, error) {
	configFile := filepath.Join(dir, configFileName)

	content, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			// Return default config if no file exists
			cfg := defaultConfig()
			applyDefaults(cfg, dir)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Interpolate environment variables
	content = []byte(interpolateEnv(string(content)))

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Apply defaults
	applyDefaults(&cfg, dir)

	return &cfg, nil
}

// Save writes the configuration to dir, creating it if needed
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configFile := filepath.Join(dir, configFileName)
	if err := os.WriteFile(configFile, content, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Path returns the configuration file path under dir
func Path(dir string) string {
	return filepath.Join(dir, configFileName)
}

// interpolateEnv replaces ${env.VAR} and ${VAR} with environment values
func interpolateEnv(content string) string {
	// Match ${env.VAR} pattern
	envPattern := regexp.MustCompile(`\$\{env\.([^}]+)\}`)
	content = envPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := envPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // keep original if not found
	})

	// Match ${VAR} pattern
	varPattern := regexp.MustCompile(`\$\{([^}]+)\}`)
	content = varPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := varPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return content
}

func defaultConfig() *Config {
	return &Config{
		Environment: "production",
		Timeout:     "30s",
		MaxRetries:  3,
		RetryDelay:  "1s",
		Output:      "table",
		History: HistoryConfig{
			Driver: "sqlite",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func applyDefaults(cfg *Config, dir string) {
	if cfg.Environment == "" && cfg.BaseURL == "" {
		cfg.Environment = "production"
	}
	if cfg.Timeout == "" {
		cfg.Timeout = "30s"
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == "" {
		cfg.RetryDelay = "1s"
	}
	if cfg.Output == "" {
		cfg.Output = "table"
	}
	if cfg.History.Driver == "" {
		cfg.History.Driver = "sqlite"
	}
	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(dir, "history.db")
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	// Load credentials from environment if not set
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(ainative.EnvAPIKey)
	}
	if cfg.APISecret == "" {
		cfg.APISecret = os.Getenv(ainative.EnvAPISecret)
	}
	if cfg.OrgID == "" {
		cfg.OrgID = os.Getenv(ainative.EnvOrgID)
	}
}
