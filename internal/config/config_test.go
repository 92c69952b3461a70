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
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.GitHub.GraphQLEndpoint != "https://api.github.com/graphql" {
		t.Errorf("endpoint = %q", cfg.GitHub.GraphQLEndpoint)
	}
	if cfg.GitHub.TokenEnv != "GITHUB_TOKEN" {
		t.Errorf("token env = %q", cfg.GitHub.TokenEnv)
	}
	if cfg.Defaults.EpochDate != "2013-01-01" {
		t.Errorf("epoch date = %q", cfg.Defaults.EpochDate)
	}
	if got := cfg.EpochYear(); got != 2013 {
		t.Errorf("EpochYear() = %d, want 2013", got)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
github:
  graphql_endpoint: https://github.example.com/api/graphql
  token_env: GHE_TOKEN
defaults:
  page_size: 25
  epoch_date: "2015-01-01"
retry:
  max_attempts: 5
  status_delay_seconds: 30
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.GitHub.GraphQLEndpoint != "https://github.example.com/api/graphql" {
		t.Errorf("endpoint = %q", cfg.GitHub.GraphQLEndpoint)
	}
	if cfg.GitHub.TokenEnv != "GHE_TOKEN" {
		t.Errorf("token env = %q", cfg.GitHub.TokenEnv)
	}
	if cfg.Defaults.PageSize != 25 {
		t.Errorf("page size = %d", cfg.Defaults.PageSize)
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("max attempts = %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.StatusDelaySeconds != 30 {
		t.Errorf("status delay = %d", cfg.Retry.StatusDelaySeconds)
	}
	// Fields the file omits keep their defaults.
	if cfg.Defaults.OutputFile != "monthly_activity.yaml" {
		t.Errorf("output file = %q", cfg.Defaults.OutputFile)
	}
	if cfg.Retry.TransientDelaySeconds != 10 {
		t.Errorf("transient delay = %d", cfg.Retry.TransientDelaySeconds)
	}
}

func TestLoadConfigMissingExplicitFileFails(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GITHUB_GRAPHQL_ENDPOINT", "https://ghe.internal/api/graphql")
	t.Setenv("CONTRIBGRAPH_PAGE_SIZE", "42")
	t.Setenv("CONTRIBGRAPH_OUTPUT_FILE", "out.json")
	t.Setenv("CONTRIBGRAPH_EPOCH_DATE", "2020-01-01")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.GitHub.GraphQLEndpoint != "https://ghe.internal/api/graphql" {
		t.Errorf("endpoint = %q", cfg.GitHub.GraphQLEndpoint)
	}
	if cfg.Defaults.PageSize != 42 {
		t.Errorf("page size = %d", cfg.Defaults.PageSize)
	}
	if cfg.Defaults.OutputFile != "out.json" {
		t.Errorf("output file = %q", cfg.Defaults.OutputFile)
	}
	if cfg.Defaults.EpochDate != "2020-01-01" {
		t.Errorf("epoch date = %q", cfg.Defaults.EpochDate)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}, wantErr: false},
		{name: "zero page size", mutate: func(c *Config) { c.Defaults.PageSize = 0 }, wantErr: true},
		{name: "page size over limit", mutate: func(c *Config) { c.Defaults.PageSize = 101 }, wantErr: true},
		{name: "bad epoch date", mutate: func(c *Config) { c.Defaults.EpochDate = "Jan 2013" }, wantErr: true},
		{name: "empty output file", mutate: func(c *Config) { c.Defaults.OutputFile = "" }, wantErr: true},
		{name: "empty endpoint", mutate: func(c *Config) { c.GitHub.GraphQLEndpoint = "" }, wantErr: true},
		{name: "negative max attempts", mutate: func(c *Config) { c.Retry.MaxAttempts = -1 }, wantErr: true},
		{name: "negative delay", mutate: func(c *Config) { c.Retry.StatusDelaySeconds = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
