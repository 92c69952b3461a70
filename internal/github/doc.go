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

// Package github fetches contribution activity from the GitHub GraphQL API.
//
// The package is layered:
//
//   - GraphQLClient executes the three query shapes the collector needs
//     (pull-request search with nested reviews and comments, issue search
//     with nested comments, organization repository listing), one page at a
//     time.
//   - RetryClient wraps any Client with the fixed-delay retry policy: a short
//     wait for transient transport failures, a longer wait for upstream API
//     failures, retried without bound by default.
//   - The paginators in paginate.go drive the nested cursors until a
//     repository's activity is fully enumerated, deduplicating records that
//     reappear when an inner cursor forces the same outer page to be
//     re-fetched.
package github
