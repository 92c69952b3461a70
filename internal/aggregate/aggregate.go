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

// Package aggregate folds fetched pull requests and issues into per-author
// monthly counters.
package aggregate

import (
	"github.com/contribgraph/contribgraph/internal/dataset"
	"github.com/contribgraph/contribgraph/internal/github"
)

// Aggregator accumulates activity into a dataset. Each contribution is
// attributed to its own author, so a single pull request typically touches
// several authors' counters.
type Aggregator struct {
	ds *dataset.Dataset
}

// New returns an aggregator writing into ds.
func New(ds *dataset.Dataset) *Aggregator {
	return &Aggregator{ds: ds}
}

// AddPullRequests folds prs into the dataset. A pull request with an empty
// author (deleted account) contributes nothing itself, but its reviews and
// comments still count for their authors.
func (a *Aggregator) AddPullRequests(prs map[string]*github.PullRequest) {
	for _, pr := range prs {
		if pr.Author != "" {
			a.ds.Counts(pr.Author).AddPullRequest(pr.CreatedAt)
		}
		for _, rv := range pr.Reviews {
			a.ds.Counts(rv.Author).AddReview(rv.SubmittedAt)
		}
		for _, cm := range pr.Comments {
			a.ds.Counts(cm.Author).AddPRComment(cm.CreatedAt)
		}
	}
}

// AddIssues folds issues into the dataset, same attribution rules as
// AddPullRequests.
func (a *Aggregator) AddIssues(issues map[string]*github.Issue) {
	for _, issue := range issues {
		if issue.Author != "" {
			a.ds.Counts(issue.Author).AddIssue(issue.CreatedAt)
		}
		for _, cm := range issue.Comments {
			a.ds.Counts(cm.Author).AddIssueComment(cm.CreatedAt)
		}
	}
}
