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
)

// FetchAllPullRequests enumerates every pull request of owner/repo created on
// or after since, with all of their reviews and comments, driving three
// cursors: the outer search cursor and the nested review and comment cursors.
//
// Cursor-advance priority per round: if any item on the page still has review
// pages left, only the reviews cursor advances; otherwise if comment pages
// are left, only the comments cursor advances; otherwise the outer cursor
// advances and both inner cursors reset. Comments for an outer page are only
// consumed once its reviews are fully drained.
//
// Advancing an inner cursor re-fetches the same outer page, so items are
// keyed by node ID (first appearance wins) and reviews/comments are
// deduplicated by their own node IDs. Without that, every inner-cursor round
// would double-count the whole page.
func FetchAllPullRequests(ctx context.Context, client Client, owner, repo, since string, pageSize int) (map[string]*PullRequest, error) {
	prs := make(map[string]*PullRequest)
	seenReviews := make(map[string]struct{})
	seenComments := make(map[string]struct{})

	var after, reviewsAfter, commentsAfter string

	for {
		page, err := client.SearchPullRequests(ctx, owner, repo, SearchOptions{
			Since:         since,
			PageSize:      pageSize,
			After:         after,
			ReviewsAfter:  reviewsAfter,
			CommentsAfter: commentsAfter,
		})
		if err != nil {
			return nil, fmt.Errorf("fetching pull requests for %s/%s: %w", owner, repo, err)
		}

		for _, node := range page.Nodes {
			if node.ID == "" {
				continue
			}

			pr, ok := prs[node.ID]
			if !ok {
				pr = &PullRequest{CreatedAt: node.CreatedAt}
				// A nil author means the account was deleted. The pull
				// request itself is not attributed to anyone, but its
				// reviews and comments by live accounts still count.
				if node.Author != nil {
					pr.Author = node.Author.Login
				}
				prs[node.ID] = pr
			}

			for _, rv := range node.Reviews.Nodes {
				if rv.Author == nil {
					continue
				}
				// A started-but-uncompleted review has no submission time.
				if rv.SubmittedAt == nil {
					continue
				}
				if _, dup := seenReviews[rv.ID]; dup {
					continue
				}
				seenReviews[rv.ID] = struct{}{}
				pr.Reviews = append(pr.Reviews, Review{
					Author:      rv.Author.Login,
					SubmittedAt: *rv.SubmittedAt,
				})
			}

			if node.Reviews.PageInfo.HasNextPage {
				reviewsAfter = node.Reviews.PageInfo.EndCursor
			} else {
				reviewsAfter = ""

				for _, cm := range node.Comments.Nodes {
					if cm.Author == nil {
						continue
					}
					if _, dup := seenComments[cm.ID]; dup {
						continue
					}
					seenComments[cm.ID] = struct{}{}
					pr.Comments = append(pr.Comments, Comment{
						Author:    cm.Author.Login,
						CreatedAt: cm.CreatedAt,
					})
				}

				if node.Comments.PageInfo.HasNextPage {
					commentsAfter = node.Comments.PageInfo.EndCursor
				} else {
					commentsAfter = ""
				}
			}
		}

		switch {
		case reviewsAfter != "":
			// More reviews: move the reviews cursor forward, hold the outer page.
		case commentsAfter != "":
			// More comments: move the comments cursor forward, hold the outer page.
		case page.PageInfo.HasNextPage:
			after = page.PageInfo.EndCursor
			reviewsAfter, commentsAfter = "", ""
		default:
			return prs, nil
		}
	}
}

// FetchAllIssues enumerates every issue of owner/repo created on or after
// since, with all of their comments. Same shape as FetchAllPullRequests with
// a single nested dimension: comments cursor before outer cursor.
func FetchAllIssues(ctx context.Context, client Client, owner, repo, since string, pageSize int) (map[string]*Issue, error) {
	issues := make(map[string]*Issue)
	seenComments := make(map[string]struct{})

	var after, commentsAfter string

	for {
		page, err := client.SearchIssues(ctx, owner, repo, SearchOptions{
			Since:         since,
			PageSize:      pageSize,
			After:         after,
			CommentsAfter: commentsAfter,
		})
		if err != nil {
			return nil, fmt.Errorf("fetching issues for %s/%s: %w", owner, repo, err)
		}

		for _, node := range page.Nodes {
			if node.ID == "" {
				continue
			}

			issue, ok := issues[node.ID]
			if !ok {
				issue = &Issue{CreatedAt: node.CreatedAt}
				if node.Author != nil {
					issue.Author = node.Author.Login
				}
				issues[node.ID] = issue
			}

			for _, cm := range node.Comments.Nodes {
				if cm.Author == nil {
					continue
				}
				if _, dup := seenComments[cm.ID]; dup {
					continue
				}
				seenComments[cm.ID] = struct{}{}
				issue.Comments = append(issue.Comments, Comment{
					Author:    cm.Author.Login,
					CreatedAt: cm.CreatedAt,
				})
			}

			if node.Comments.PageInfo.HasNextPage {
				commentsAfter = node.Comments.PageInfo.EndCursor
			} else {
				commentsAfter = ""
			}
		}

		switch {
		case commentsAfter != "":
			// More comments: hold the outer page.
		case page.PageInfo.HasNextPage:
			after = page.PageInfo.EndCursor
			commentsAfter = ""
		default:
			return issues, nil
		}
	}
}

// ListAllOrgRepositories expands an organization name into the names of its
// non-empty repositories. Repositories without a default branch are skipped;
// archived repositories are included.
func ListAllOrgRepositories(ctx context.Context, client Client, org string) ([]string, error) {
	var names []string
	var after string

	for {
		page, err := client.ListOrgRepositories(ctx, org, after)
		if err != nil {
			return nil, fmt.Errorf("listing repositories for org %s: %w", org, err)
		}

		for _, repo := range page.Repositories {
			if !repo.HasDefaultBranch {
				continue
			}
			names = append(names, repo.Name)
		}

		if !page.PageInfo.HasNextPage {
			return names, nil
		}
		after = page.PageInfo.EndCursor
	}
}
