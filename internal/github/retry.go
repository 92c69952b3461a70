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

package github

import (
	"context"
	"fmt"
	"time"

	"github.com/contribgraph/contribgraph/internal/giterror"
	"github.com/pterm/pterm"
)

// RetryConfig configures the retry behavior for API calls. The collector runs
// unattended, so the default policy never gives up: upstream failures are
// assumed to be eventually transient. Callers that need a terminal failure
// must set MaxAttempts or cancel the context.
type RetryConfig struct {
	// TransientDelay is the wait after a network transport failure.
	TransientDelay time.Duration
	// StatusDelay is the wait after a non-success API response.
	StatusDelay time.Duration
	// MaxAttempts limits the number of tries. Zero means retry forever.
	MaxAttempts int
}

// DefaultRetryConfig returns the default retry configuration: 10 seconds
// after a transport failure, 60 seconds after an API failure, unbounded.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		TransientDelay: 10 * time.Second,
		StatusDelay:    60 * time.Second,
		MaxAttempts:    0,
	}
}

// RetryClient wraps a Client with fixed-delay retry on every failure.
// Context cancellation is the only error that passes through immediately.
type RetryClient struct {
	client    Client
	config    *RetryConfig
	inspector giterror.Inspector
}

// NewRetryClient creates a new RetryClient with the given configuration.
func NewRetryClient(client Client, config *RetryConfig) Client {
	if config == nil {
		config = DefaultRetryConfig()
	}
	return &RetryClient{
		client:    client,
		config:    config,
		inspector: giterror.NewInspector(),
	}
}

// SearchPullRequests implements the Client interface with retry logic.
func (r *RetryClient) SearchPullRequests(ctx context.Context, owner, repo string, opts SearchOptions) (*PullRequestSearchPage, error) {
	var page *PullRequestSearchPage
	err := r.do(ctx, func() error {
		var opErr error
		page, opErr = r.client.SearchPullRequests(ctx, owner, repo, opts)
		return opErr
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// SearchIssues implements the Client interface with retry logic.
func (r *RetryClient) SearchIssues(ctx context.Context, owner, repo string, opts SearchOptions) (*IssueSearchPage, error) {
	var page *IssueSearchPage
	err := r.do(ctx, func() error {
		var opErr error
		page, opErr = r.client.SearchIssues(ctx, owner, repo, opts)
		return opErr
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// ListOrgRepositories implements the Client interface with retry logic.
func (r *RetryClient) ListOrgRepositories(ctx context.Context, org, after string) (*RepositoryPage, error) {
	var page *RepositoryPage
	err := r.do(ctx, func() error {
		var opErr error
		page, opErr = r.client.ListOrgRepositories(ctx, org, after)
		return opErr
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// do runs op until it succeeds, the context is canceled, or the configured
// attempt limit (if any) is exhausted.
func (r *RetryClient) do(ctx context.Context, op func() error) error {
	for attempt := 1; ; attempt++ {
		err := op()
		if err == nil {
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if r.config.MaxAttempts > 0 && attempt >= r.config.MaxAttempts {
			return fmt.Errorf("giving up after %d attempts: %w", attempt, err)
		}

		// Unclassifiable errors get the longer status delay: backing off too
		// much is safer than hammering an unhealthy upstream.
		delay := r.config.StatusDelay
		switch {
		case r.inspector.IsTransportError(err):
			delay = r.config.TransientDelay
			pterm.Warning.Printfln("Network error, retrying in %s: %v", delay, err)
		case r.inspector.IsStatusError(err):
			pterm.Warning.Printfln("GitHub query failed, retrying in %s: %v", delay, err)
		default:
			pterm.Warning.Printfln("Unexpected error, retrying in %s: %v", delay, err)
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
