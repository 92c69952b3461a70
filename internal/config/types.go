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

// Package config types define the configuration structures used throughout
// contribgraph. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

// Config represents the complete configuration for contribgraph. It
// consolidates settings from various sources and provides a unified interface
// for accessing configuration values throughout the application.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Retry    RetryConfig    `yaml:"retry"`
}

// GitHubConfig contains GitHub-specific settings including the GraphQL
// endpoint and authentication configuration. This allows easy configuration
// for GitHub Enterprise deployments by specifying a custom endpoint.
type GitHubConfig struct {
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
	TokenEnv        string `yaml:"token_env"`
}

// DefaultsConfig contains default settings that apply to all collection runs
// unless overridden by command-line flags.
type DefaultsConfig struct {
	// PageSize is the number of items requested per search page, at most 100.
	PageSize int `yaml:"page_size"`
	// EpochDate is the created-on-or-after date (YYYY-MM-DD) used the first
	// time a repository is collected.
	EpochDate string `yaml:"epoch_date"`
	// OutputFile is the dataset path used when --output-file is not given.
	// The historical default name has a .yaml extension even though the
	// content is JSON; existing datasets rely on it.
	OutputFile string `yaml:"output_file"`
}

// RetryConfig controls how failed GitHub calls are retried. Delays are in
// seconds; max_attempts zero means retry forever.
type RetryConfig struct {
	MaxAttempts           int `yaml:"max_attempts"`
	TransientDelaySeconds int `yaml:"transient_delay_seconds"`
	StatusDelaySeconds    int `yaml:"status_delay_seconds"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. These defaults are optimized for public GitHub.com usage but
// can be overridden for GitHub Enterprise or special requirements.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			GraphQLEndpoint: "https://api.github.com/graphql",
			TokenEnv:        "GITHUB_TOKEN",
		},
		Defaults: DefaultsConfig{
			PageSize:   100,
			EpochDate:  "2013-01-01",
			OutputFile: "monthly_activity.yaml",
		},
		Retry: RetryConfig{
			MaxAttempts:           0,
			TransientDelaySeconds: 10,
			StatusDelaySeconds:    60,
		},
	}
}
