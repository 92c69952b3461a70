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
	"net/http"
	"time"

	"github.com/shurcooL/graphql"
	"golang.org/x/oauth2"
)

const userAgent = "contribgraph"

// GraphQLClient implements the Client interface against the GitHub GraphQL
// API. The endpoint is configurable to support GitHub Enterprise deployments.
type GraphQLClient struct {
	client *graphql.Client
}

// NewGraphQLClient creates a GitHub GraphQL client for the given endpoint.
// The token is optional: without one, requests go out unauthenticated and are
// subject to much lower rate limits.
func NewGraphQLClient(token, endpoint string) *GraphQLClient {
	base := &userAgentTransport{base: http.DefaultTransport}

	var transport http.RoundTripper = base
	if token != "" {
		transport = &oauth2.Transport{
			Base:   base,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}

	httpClient := &http.Client{Transport: transport}

	return &GraphQLClient{
		client: graphql.NewClient(endpoint, httpClient),
	}
}

// userAgentTransport adds the User-Agent header GitHub asks API clients to send.
type userAgentTransport struct {
	base http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", userAgent)
	return t.base.RoundTrip(req)
}

// buildSearchQuery constructs a GitHub search string filtered by repository,
// item kind ("pr" or "issue"), and an inclusive created-on-or-after date.
// The date is embedded directly into the search string, so it must be a
// validated YYYY-MM-DD value, never raw user input.
func buildSearchQuery(owner, repo, kind, since string) string {
	return fmt.Sprintf("repo:%s/%s is:%s created:>=%s", owner, repo, kind, since)
}

// wirePageInfo mirrors the GraphQL pageInfo object.
type wirePageInfo struct {
	HasNextPage graphql.Boolean
	EndCursor   graphql.String
}

func (p wirePageInfo) convert() PageInfo {
	return PageInfo{
		HasNextPage: bool(p.HasNextPage),
		EndCursor:   string(p.EndCursor),
	}
}

// wireActor mirrors the GraphQL actor object. A deleted account decodes as a
// nil pointer to this type.
type wireActor struct {
	Login graphql.String
}

func (a *wireActor) convert() *Actor {
	if a == nil {
		return nil
	}
	return &Actor{Login: string(a.Login)}
}

type wireReviewConnection struct {
	PageInfo wirePageInfo
	Nodes    []struct {
		ID          graphql.String
		SubmittedAt *time.Time
		Author      *wireActor `graphql:"author"`
	}
}

type wireCommentConnection struct {
	PageInfo wirePageInfo
	Nodes    []struct {
		ID        graphql.String
		CreatedAt time.Time
		Author    *wireActor `graphql:"author"`
	}
}

func (c wireCommentConnection) convert() CommentConnection {
	out := CommentConnection{
		PageInfo: c.PageInfo.convert(),
		Nodes:    make([]CommentNode, 0, len(c.Nodes)),
	}
	for _, n := range c.Nodes {
		out.Nodes = append(out.Nodes, CommentNode{
			ID:        string(n.ID),
			Author:    n.Author.convert(),
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}

// SearchPullRequests fetches one page of pull requests created on or after
// opts.Since, with one nested page of reviews and comments per item. All
// nested lists on the page share the same inner cursors; the paginator in
// paginate.go is responsible for making sense of that.
func (c *GraphQLClient) SearchPullRequests(ctx context.Context, owner, repo string, opts SearchOptions) (*PullRequestSearchPage, error) {
	var query struct {
		Search struct {
			PageInfo wirePageInfo
			Nodes    []struct {
				PullRequest struct {
					ID        graphql.String
					CreatedAt time.Time
					Author    *wireActor           `graphql:"author"`
					Reviews   wireReviewConnection `graphql:"reviews(first: $inner, after: $reviewsAfter)"`
					Comments  wireCommentConnection `graphql:"comments(first: $inner, after: $commentsAfter)"`
				} `graphql:"... on PullRequest"`
			}
		} `graphql:"search(query: $search, type: ISSUE, first: $first, after: $after)"`
	}

	variables := map[string]interface{}{
		"search":        graphql.String(buildSearchQuery(owner, repo, "pr", opts.Since)),
		"first":         graphql.Int(int32(pageSizeOrDefault(opts.PageSize))), // #nosec G115 - capped at 100
		"inner":         graphql.Int(innerPageSize),
		"after":         cursorVar(opts.After),
		"reviewsAfter":  cursorVar(opts.ReviewsAfter),
		"commentsAfter": cursorVar(opts.CommentsAfter),
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, fmt.Errorf("pull request search for %s/%s failed: %w", owner, repo, err)
	}

	page := &PullRequestSearchPage{
		PageInfo: query.Search.PageInfo.convert(),
		Nodes:    make([]PullRequestNode, 0, len(query.Search.Nodes)),
	}

	for _, node := range query.Search.Nodes {
		pr := node.PullRequest

		reviews := ReviewConnection{
			PageInfo: pr.Reviews.PageInfo.convert(),
			Nodes:    make([]ReviewNode, 0, len(pr.Reviews.Nodes)),
		}
		for _, rv := range pr.Reviews.Nodes {
			reviews.Nodes = append(reviews.Nodes, ReviewNode{
				ID:          string(rv.ID),
				Author:      rv.Author.convert(),
				SubmittedAt: rv.SubmittedAt,
			})
		}

		page.Nodes = append(page.Nodes, PullRequestNode{
			ID:        string(pr.ID),
			CreatedAt: pr.CreatedAt,
			Author:    pr.Author.convert(),
			Reviews:   reviews,
			Comments:  pr.Comments.convert(),
		})
	}

	return page, nil
}

// SearchIssues fetches one page of issues created on or after opts.Since,
// with one nested page of comments per item.
func (c *GraphQLClient) SearchIssues(ctx context.Context, owner, repo string, opts SearchOptions) (*IssueSearchPage, error) {
	var query struct {
		Search struct {
			PageInfo wirePageInfo
			Nodes    []struct {
				Issue struct {
					ID        graphql.String
					CreatedAt time.Time
					Author    *wireActor            `graphql:"author"`
					Comments  wireCommentConnection `graphql:"comments(first: $inner, after: $commentsAfter)"`
				} `graphql:"... on Issue"`
			}
		} `graphql:"search(query: $search, type: ISSUE, first: $first, after: $after)"`
	}

	variables := map[string]interface{}{
		"search":        graphql.String(buildSearchQuery(owner, repo, "issue", opts.Since)),
		"first":         graphql.Int(int32(pageSizeOrDefault(opts.PageSize))), // #nosec G115 - capped at 100
		"inner":         graphql.Int(innerPageSize),
		"after":         cursorVar(opts.After),
		"commentsAfter": cursorVar(opts.CommentsAfter),
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, fmt.Errorf("issue search for %s/%s failed: %w", owner, repo, err)
	}

	page := &IssueSearchPage{
		PageInfo: query.Search.PageInfo.convert(),
		Nodes:    make([]IssueNode, 0, len(query.Search.Nodes)),
	}

	for _, node := range query.Search.Nodes {
		issue := node.Issue
		page.Nodes = append(page.Nodes, IssueNode{
			ID:        string(issue.ID),
			CreatedAt: issue.CreatedAt,
			Author:    issue.Author.convert(),
			Comments:  issue.Comments.convert(),
		})
	}

	return page, nil
}

// ListOrgRepositories fetches one page of an organization's repositories.
// The default branch reference is fetched so callers can skip empty
// repositories; archived repositories are reported as-is.
func (c *GraphQLClient) ListOrgRepositories(ctx context.Context, org, after string) (*RepositoryPage, error) {
	var query struct {
		Organization struct {
			Repositories struct {
				PageInfo wirePageInfo
				Nodes    []struct {
					Name             graphql.String
					IsArchived       graphql.Boolean
					DefaultBranchRef *struct {
						Name graphql.String
					} `graphql:"defaultBranchRef"`
				}
			} `graphql:"repositories(first: $first, after: $after)"`
		} `graphql:"organization(login: $login)"`
	}

	variables := map[string]interface{}{
		"login": graphql.String(org),
		"first": graphql.Int(defaultPageSize),
		"after": cursorVar(after),
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, fmt.Errorf("repository listing for org %s failed: %w", org, err)
	}

	page := &RepositoryPage{
		PageInfo:     query.Organization.Repositories.PageInfo.convert(),
		Repositories: make([]RepositoryNode, 0, len(query.Organization.Repositories.Nodes)),
	}

	for _, node := range query.Organization.Repositories.Nodes {
		page.Repositories = append(page.Repositories, RepositoryNode{
			Name:             string(node.Name),
			IsArchived:       bool(node.IsArchived),
			HasDefaultBranch: node.DefaultBranchRef != nil,
		})
	}

	return page, nil
}

// cursorVar converts a cursor string to the nullable GraphQL String variable
// the API expects: null for "start", the token otherwise.
func cursorVar(cursor string) interface{} {
	if cursor == "" {
		return (*graphql.String)(nil)
	}
	v := graphql.String(cursor)
	return &v
}

func pageSizeOrDefault(size int) int {
	if size <= 0 || size > defaultPageSize {
		return defaultPageSize
	}
	return size
}
