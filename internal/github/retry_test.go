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
	"errors"
	"strings"
	"testing"
	"time"
)

// flakyClient fails its first failures calls with err, then succeeds.
type flakyClient struct {
	failures int
	err      error
	calls    int
}

func (f *flakyClient) SearchPullRequests(ctx context.Context, owner, repo string, opts SearchOptions) (*PullRequestSearchPage, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return &PullRequestSearchPage{}, nil
}

func (f *flakyClient) SearchIssues(ctx context.Context, owner, repo string, opts SearchOptions) (*IssueSearchPage, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return &IssueSearchPage{}, nil
}

func (f *flakyClient) ListOrgRepositories(ctx context.Context, org, after string) (*RepositoryPage, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return &RepositoryPage{}, nil
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg.TransientDelay != 10*time.Second {
		t.Errorf("TransientDelay = %s, want 10s", cfg.TransientDelay)
	}
	if cfg.StatusDelay != 60*time.Second {
		t.Errorf("StatusDelay = %s, want 60s", cfg.StatusDelay)
	}
	if cfg.MaxAttempts != 0 {
		t.Errorf("MaxAttempts = %d, want 0 (retry forever)", cfg.MaxAttempts)
	}
}

func TestRetryRecoversFromTransportErrors(t *testing.T) {
	flaky := &flakyClient{failures: 2, err: errors.New("dial tcp: connection refused")}
	client := NewRetryClient(flaky, &RetryConfig{
		TransientDelay: time.Millisecond,
		StatusDelay:    time.Millisecond,
	})

	_, err := client.SearchPullRequests(context.Background(), "octo", "hello", SearchOptions{})
	if err != nil {
		t.Fatalf("SearchPullRequests: %v", err)
	}
	if flaky.calls != 3 {
		t.Errorf("made %d calls, want 3", flaky.calls)
	}
}

func TestRetryUsesLongerDelayForStatusErrors(t *testing.T) {
	flaky := &flakyClient{failures: 1, err: errors.New("non-200 OK status code: 502 Bad Gateway")}
	client := NewRetryClient(flaky, &RetryConfig{
		TransientDelay: time.Millisecond,
		StatusDelay:    60 * time.Millisecond,
	})

	start := time.Now()
	_, err := client.SearchIssues(context.Background(), "octo", "hello", SearchOptions{})
	if err != nil {
		t.Fatalf("SearchIssues: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Errorf("retried after %s, want at least the status delay", elapsed)
	}
}

func TestRetryTreatsUnclassifiedErrorsAsStatusFailures(t *testing.T) {
	flaky := &flakyClient{failures: 1, err: errors.New("something inexplicable")}
	client := NewRetryClient(flaky, &RetryConfig{
		TransientDelay: time.Millisecond,
		StatusDelay:    60 * time.Millisecond,
	})

	start := time.Now()
	_, err := client.SearchPullRequests(context.Background(), "octo", "hello", SearchOptions{})
	if err != nil {
		t.Fatalf("SearchPullRequests: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Errorf("retried after %s, want the longer status delay for unclassified errors", elapsed)
	}
	if flaky.calls != 2 {
		t.Errorf("made %d calls, want 2", flaky.calls)
	}
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	wantErr := errors.New("non-200 OK status code: 500")
	flaky := &flakyClient{failures: 100, err: wantErr}
	client := NewRetryClient(flaky, &RetryConfig{
		TransientDelay: time.Millisecond,
		StatusDelay:    time.Millisecond,
		MaxAttempts:    3,
	})

	_, err := client.ListOrgRepositories(context.Background(), "octo", "")
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped original", err)
	}
	if !strings.Contains(err.Error(), "3 attempts") {
		t.Errorf("err = %v, want attempt count in message", err)
	}
	if flaky.calls != 3 {
		t.Errorf("made %d calls, want 3", flaky.calls)
	}
}

func TestRetryStopsOnContextCancellation(t *testing.T) {
	flaky := &flakyClient{failures: 100, err: errors.New("non-200 OK status code: 500")}
	client := NewRetryClient(flaky, &RetryConfig{
		TransientDelay: time.Hour,
		StatusDelay:    time.Hour,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := client.SearchPullRequests(ctx, "octo", "hello", SearchOptions{})
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("err = %v, want context deadline", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("retry loop did not honor context cancellation")
	}
}
