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

// Package dataset owns the persisted activity file: per-author monthly
// counters, the set of repositories already collected, and the date of the
// last completed run.
//
// The file is a single JSON document. Loading merges stored counts into a
// freshly zero-filled month range so that every author always carries an
// entry for every month from the epoch through today, and saving is atomic
// so a run killed mid-write never leaves a truncated file behind.
package dataset
