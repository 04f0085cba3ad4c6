package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// configTemplate is the starter file written by Init. Credentials are left
// commented so the AINATIVE_* environment fallbacks stay in effect.
const configTemplate = `# AINative CLI configuration
# Credentials can also be supplied via AINATIVE_API_KEY, AINATIVE_API_SECRET,
# and AINATIVE_ORG_ID environment variables.

# api_key: ${env.AINATIVE_API_KEY}
# api_secret: ${env.AINATIVE_API_SECRET}
# organization_id: ""

# Named environment: production, staging, development, local.
# base_url overrides the environment when set.
environment: production
# base_url: https://api.ainative.studio

timeout: 30s
max_retries: 3
retry_delay: 1s

# Command output format: table | json
output: table

# Local command journal
history:
  driver: sqlite
  # path: ~/.ainative/history.db

logging:
  level: info
  # file: ~/.ainative/cli.log
`

// Init writes a starter configuration file and returns its path. An existing
// file is only overwritten when force is set.
func Init(dir string, force bool) (string, error) {
	configFile := filepath.Join(dir, configFileName)

	if !force {
		if _, err := os.Stat(configFile); err == nil {
			return "", fmt.Errorf("config file already exists: %s", configFile)
		}
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(configTemplate), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configFile, nil
}
