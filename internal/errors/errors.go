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

// Package errors defines sentinel errors for consistent error handling across
// the application. All of them map to exit code 1 in the CLI; upstream API
// failures never surface here because the query layer retries them.
package errors

import "errors"

var (
	// ErrNoTargets indicates that neither --repos nor --orgs was given.
	ErrNoTargets = errors.New("no repositories or organizations specified")

	// ErrBadRepoSpec indicates a --repos entry that is not of the form org/repo.
	ErrBadRepoSpec = errors.New("invalid repository specification")

	// ErrBadSinceMonth indicates a --since value that is not of the form YYYY-MM.
	ErrBadSinceMonth = errors.New("invalid since month")
)
