// Copyright 2025 The contribgraph authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// precedence order. If configPath is provided, it loads from that specific
// file. Otherwise, it searches standard locations:
//   - .contribgraph.yaml (current directory)
//   - .contribgraph.yml (current directory)
//   - ~/.contribgraph/config.yaml
//   - ~/.contribgraph/config.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".contribgraph.yaml",
			".contribgraph.yml",
			filepath.Join(os.Getenv("HOME"), ".contribgraph", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".contribgraph", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("GITHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}
	if pageSize := os.Getenv("CONTRIBGRAPH_PAGE_SIZE"); pageSize != "" {
		if size, err := strconv.Atoi(pageSize); err == nil && size > 0 {
			cfg.Defaults.PageSize = size
		}
	}
	if out := os.Getenv("CONTRIBGRAPH_OUTPUT_FILE"); out != "" {
		cfg.Defaults.OutputFile = out
	}
	if epoch := os.Getenv("CONTRIBGRAPH_EPOCH_DATE"); epoch != "" {
		cfg.Defaults.EpochDate = epoch
	}
}

// Validate checks if the configuration contains valid values. It ensures the
// page size is within GitHub's limits, the epoch date parses, and retry
// delays are not negative. This should be called after loading configuration
// to catch invalid settings early.
func (c *Config) Validate() error {
	if c.Defaults.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got: %d", c.Defaults.PageSize)
	}
	if c.Defaults.PageSize > 100 {
		return fmt.Errorf("page size %d exceeds GitHub API limit of 100", c.Defaults.PageSize)
	}
	if _, err := time.Parse("2006-01-02", c.Defaults.EpochDate); err != nil {
		return fmt.Errorf("epoch date %q is not a valid YYYY-MM-DD date", c.Defaults.EpochDate)
	}
	if c.Defaults.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if c.GitHub.GraphQLEndpoint == "" {
		return fmt.Errorf("GitHub GraphQL endpoint cannot be empty")
	}
	if c.Retry.MaxAttempts < 0 {
		return fmt.Errorf("retry max attempts cannot be negative, got: %d", c.Retry.MaxAttempts)
	}
	if c.Retry.TransientDelaySeconds < 0 || c.Retry.StatusDelaySeconds < 0 {
		return fmt.Errorf("retry delays cannot be negative")
	}
	return nil
}

// EpochYear returns the year of the configured epoch date. Validate must
// have succeeded before calling this.
func (c *Config) EpochYear() int {
	t, _ := time.Parse("2006-01-02", c.Defaults.EpochDate)
	return t.Year()
}
