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

package dataset

import "time"

// monthLayout is the key format of every monthly counter map.
const monthLayout = "2006-01"

// AuthorCounts holds one author's activity, bucketed by calendar month.
// Every map carries a zero entry for every month from the epoch through the
// current month, so downstream consumers never have to distinguish "no
// activity" from "month missing".
type AuthorCounts struct {
	PRsByMonth           map[string]int `json:"prs_by_month"`
	ReviewsByMonth       map[string]int `json:"reviews_by_month"`
	PRCommentsByMonth    map[string]int `json:"pr_comments_by_month"`
	IssuesByMonth        map[string]int `json:"issues_by_month"`
	IssueCommentsByMonth map[string]int `json:"issue_comments_by_month"`
}

// NewAuthorCounts returns counters zero-filled for every month from January
// of epochYear through the month of today, inclusive.
func NewAuthorCounts(epochYear int, today time.Time) *AuthorCounts {
	c := &AuthorCounts{
		PRsByMonth:           make(map[string]int),
		ReviewsByMonth:       make(map[string]int),
		PRCommentsByMonth:    make(map[string]int),
		IssuesByMonth:        make(map[string]int),
		IssueCommentsByMonth: make(map[string]int),
	}

	end := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	for m := time.Date(epochYear, time.January, 1, 0, 0, 0, 0, time.UTC); !m.After(end); m = m.AddDate(0, 1, 0) {
		key := m.Format(monthLayout)
		c.PRsByMonth[key] = 0
		c.ReviewsByMonth[key] = 0
		c.PRCommentsByMonth[key] = 0
		c.IssuesByMonth[key] = 0
		c.IssueCommentsByMonth[key] = 0
	}

	return c
}

func monthKey(t time.Time) string {
	return t.UTC().Format(monthLayout)
}

// AddPullRequest counts a pull request opened at t.
func (c *AuthorCounts) AddPullRequest(t time.Time) {
	c.PRsByMonth[monthKey(t)]++
}

// AddReview counts a pull request review submitted at t.
func (c *AuthorCounts) AddReview(t time.Time) {
	c.ReviewsByMonth[monthKey(t)]++
}

// AddPRComment counts a pull request comment created at t.
func (c *AuthorCounts) AddPRComment(t time.Time) {
	c.PRCommentsByMonth[monthKey(t)]++
}

// AddIssue counts an issue opened at t.
func (c *AuthorCounts) AddIssue(t time.Time) {
	c.IssuesByMonth[monthKey(t)]++
}

// AddIssueComment counts an issue comment created at t.
func (c *AuthorCounts) AddIssueComment(t time.Time) {
	c.IssueCommentsByMonth[monthKey(t)]++
}

// mergeFrom copies stored counts over the zero-filled baseline. Stored months
// outside the prefilled range (a file written under a different epoch) are
// kept rather than dropped.
func (c *AuthorCounts) mergeFrom(stored *AuthorCounts) {
	if stored == nil {
		return
	}
	copyCounts(c.PRsByMonth, stored.PRsByMonth)
	copyCounts(c.ReviewsByMonth, stored.ReviewsByMonth)
	copyCounts(c.PRCommentsByMonth, stored.PRCommentsByMonth)
	copyCounts(c.IssuesByMonth, stored.IssuesByMonth)
	copyCounts(c.IssueCommentsByMonth, stored.IssueCommentsByMonth)
}

func copyCounts(dst, src map[string]int) {
	for month, n := range src {
		dst[month] = n
	}
}
