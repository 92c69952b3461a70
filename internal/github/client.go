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

// Client defines the interface for the GitHub GraphQL queries the collector
// issues. This interface allows for easy mocking in tests.
type Client interface {
	// SearchPullRequests fetches one page of a repository's pull requests
	// created on or after opts.Since, each with one page of nested reviews
	// and comments positioned at the current inner cursors.
	SearchPullRequests(ctx context.Context, owner, repo string, opts SearchOptions) (*PullRequestSearchPage, error)

	// SearchIssues fetches one page of a repository's issues created on or
	// after opts.Since, each with one page of nested comments.
	SearchIssues(ctx context.Context, owner, repo string, opts SearchOptions) (*IssueSearchPage, error)

	// ListOrgRepositories fetches one page of an organization's repositories
	// starting at the given cursor (empty for the first page).
	ListOrgRepositories(ctx context.Context, org, after string) (*RepositoryPage, error)
}
