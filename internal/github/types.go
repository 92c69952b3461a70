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

import "time"

// PageInfo carries cursor-based pagination state for one result list.
// EndCursor is an opaque continuation token; an empty string means "start".
type PageInfo struct {
	HasNextPage bool
	EndCursor   string
}

// Actor identifies the account behind a record. Nodes authored by deleted
// accounts come back with a nil *Actor.
type Actor struct {
	Login string
}

// ReviewNode is one review as returned by the API, before filtering.
// SubmittedAt is nil for a started-but-uncompleted review.
type ReviewNode struct {
	ID          string
	Author      *Actor
	SubmittedAt *time.Time
}

// CommentNode is one comment as returned by the API, before filtering.
type CommentNode struct {
	ID        string
	Author    *Actor
	CreatedAt time.Time
}

// ReviewConnection is a single page of a pull request's reviews.
type ReviewConnection struct {
	PageInfo PageInfo
	Nodes    []ReviewNode
}

// CommentConnection is a single page of an item's comments.
type CommentConnection struct {
	PageInfo PageInfo
	Nodes    []CommentNode
}

// PullRequestNode is one pull request from a search page, with the review and
// comment pages that were fetched alongside it at the current inner cursors.
type PullRequestNode struct {
	ID        string
	CreatedAt time.Time
	Author    *Actor
	Reviews   ReviewConnection
	Comments  CommentConnection
}

// PullRequestSearchPage is one page of pull-request search results.
type PullRequestSearchPage struct {
	PageInfo PageInfo
	Nodes    []PullRequestNode
}

// IssueNode is one issue from a search page.
type IssueNode struct {
	ID        string
	CreatedAt time.Time
	Author    *Actor
	Comments  CommentConnection
}

// IssueSearchPage is one page of issue search results.
type IssueSearchPage struct {
	PageInfo PageInfo
	Nodes    []IssueNode
}

// RepositoryNode is one repository from an organization listing.
// A repository without a default branch is empty and gets skipped; archived
// repositories are kept.
type RepositoryNode struct {
	Name             string
	IsArchived       bool
	HasDefaultBranch bool
}

// RepositoryPage is one page of an organization's repositories.
type RepositoryPage struct {
	PageInfo     PageInfo
	Repositories []RepositoryNode
}

// SearchOptions configures a single page fetch of a search query.
type SearchOptions struct {
	// Since filters to items created on or after this inclusive ISO date
	// (YYYY-MM-DD). It is embedded into the search string, so callers must
	// pass a validated date, never raw user input.
	Since string

	// PageSize controls how many outer items to fetch per page.
	// Defaults to 100 if not specified; 100 is also the API maximum.
	PageSize int

	// After is the outer cursor. Empty fetches from the beginning.
	After string

	// ReviewsAfter is the nested reviews cursor applied to every item on the
	// page. Empty fetches each item's reviews from the beginning.
	ReviewsAfter string

	// CommentsAfter is the nested comments cursor, same semantics.
	CommentsAfter string
}

// Default values for fetch operations.
const (
	defaultPageSize = 100
	innerPageSize   = 100
)

// PullRequest is a fully collected pull request: author, creation time, and
// every review and comment gathered across all pagination rounds.
type PullRequest struct {
	Author    string
	CreatedAt time.Time
	Reviews   []Review
	Comments  []Comment
}

// Review is a completed review by a live account.
type Review struct {
	Author      string
	SubmittedAt time.Time
}

// Comment is a comment by a live account.
type Comment struct {
	Author    string
	CreatedAt time.Time
}

// Issue is a fully collected issue.
type Issue struct {
	Author    string
	CreatedAt time.Time
	Comments  []Comment
}
