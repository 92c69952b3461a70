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

import "context"

// MockClient is a scripted implementation of the Client interface for tests.
// Each call returns the next configured page in sequence and records the
// options it was called with, so tests can assert both the collected results
// and the exact cursor/date progression the caller drove.
type MockClient struct {
	// Pages to return, consumed in order. When a slice runs out, an empty
	// final page is returned.
	PRPages    []*PullRequestSearchPage
	IssuePages []*IssueSearchPage
	RepoPages  []*RepositoryPage

	// Err, when set, is returned by every call.
	Err error

	// Recorded calls for verification.
	PRCalls    []SearchOptions
	IssueCalls []SearchOptions
	RepoCalls  []string
	LastOwner  string
	LastRepo   string

	prIndex    int
	issueIndex int
	repoIndex  int
}

// SearchPullRequests implements the Client interface.
func (m *MockClient) SearchPullRequests(ctx context.Context, owner, repo string, opts SearchOptions) (*PullRequestSearchPage, error) {
	m.PRCalls = append(m.PRCalls, opts)
	m.LastOwner, m.LastRepo = owner, repo

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.prIndex >= len(m.PRPages) {
		return &PullRequestSearchPage{}, nil
	}
	page := m.PRPages[m.prIndex]
	m.prIndex++
	return page, nil
}

// SearchIssues implements the Client interface.
func (m *MockClient) SearchIssues(ctx context.Context, owner, repo string, opts SearchOptions) (*IssueSearchPage, error) {
	m.IssueCalls = append(m.IssueCalls, opts)
	m.LastOwner, m.LastRepo = owner, repo

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.issueIndex >= len(m.IssuePages) {
		return &IssueSearchPage{}, nil
	}
	page := m.IssuePages[m.issueIndex]
	m.issueIndex++
	return page, nil
}

// ListOrgRepositories implements the Client interface.
func (m *MockClient) ListOrgRepositories(ctx context.Context, org, after string) (*RepositoryPage, error) {
	m.RepoCalls = append(m.RepoCalls, after)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.repoIndex >= len(m.RepoPages) {
		return &RepositoryPage{}, nil
	}
	page := m.RepoPages[m.repoIndex]
	m.repoIndex++
	return page, nil
}
