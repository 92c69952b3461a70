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

// Package main implements the contribgraph command-line interface.
// The tool collects per-author monthly contribution counts (pull requests,
// reviews, comments, issues) from GitHub repositories into a local JSON
// dataset, and renders reports from that dataset.
//
// The CLI supports:
//   - Collecting activity for explicit repositories or whole organizations
//   - Incremental runs: previously visited repositories resume from the last
//     completed run instead of re-walking all history
//   - Reporting with author filters, anonymized labels, and a month cutoff
//   - GitHub token authentication via flag or environment variable
//
// Usage:
//
//	contribgraph collect --repos golang/go --repos golang/tools
//	contribgraph collect --orgs myorg
//	contribgraph report --since 2024-01 --anonymize
//
// Exit codes:
//   - 0: Success
//   - 1: Error (bad arguments, unreadable dataset, interrupted run)
package main
