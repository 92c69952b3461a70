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

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// dateLayout is the format of the last_updated field.
const dateLayout = "2006-01-02"

// Dataset is the persisted activity file. ReposVisited is kept sorted so the
// file diffs cleanly between runs.
type Dataset struct {
	LastUpdated   string                   `json:"last_updated"`
	ReposVisited  []string                 `json:"repos_visited"`
	AuthorContrib map[string]*AuthorCounts `json:"author_contrib"`

	epochYear int
	today     time.Time
	visited   map[string]struct{}
}

// New returns an empty dataset whose author counters will be zero-filled from
// January of epochYear through the month of today. LastUpdated starts at
// today's date: per-repository checkpoint saves persist it, so a run that is
// interrupted before its final save resumes visited repositories from its own
// start date instead of re-scanning and re-counting all history.
func New(epochYear int, today time.Time) *Dataset {
	return &Dataset{
		LastUpdated:   today.UTC().Format(dateLayout),
		AuthorContrib: make(map[string]*AuthorCounts),
		epochYear:     epochYear,
		today:         today,
		visited:       make(map[string]struct{}),
	}
}

// Load reads the dataset at path and merges its counts into freshly
// zero-filled counters, so authors gain entries for months that did not exist
// when the file was written. A missing file yields an empty dataset stamped
// with today's date; any other read or decode failure is an error, since
// silently starting over would discard all prior collection work on the next
// save.
func Load(path string, epochYear int, today time.Time) (*Dataset, error) {
	ds := New(epochYear, today)

	stored, err := Read(path)
	if os.IsNotExist(err) {
		return ds, nil
	}
	if err != nil {
		return nil, err
	}

	ds.LastUpdated = stored.LastUpdated
	for _, repo := range stored.ReposVisited {
		ds.MarkVisited(repo)
	}
	for author, counts := range stored.AuthorContrib {
		merged := NewAuthorCounts(epochYear, today)
		merged.mergeFrom(counts)
		ds.AuthorContrib[author] = merged
	}

	return ds, nil
}

// Read decodes the dataset at path exactly as stored, with no zero-fill
// merge. The report path uses this so that it only ever sees months the
// collector actually wrote.
func Read(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{visited: make(map[string]struct{})}
	if err := json.Unmarshal(data, ds); err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	if ds.AuthorContrib == nil {
		ds.AuthorContrib = make(map[string]*AuthorCounts)
	}
	for _, repo := range ds.ReposVisited {
		ds.visited[repo] = struct{}{}
	}

	return ds, nil
}

// Counts returns the counters for author, creating zero-filled ones on first
// reference.
func (d *Dataset) Counts(author string) *AuthorCounts {
	c, ok := d.AuthorContrib[author]
	if !ok {
		c = NewAuthorCounts(d.epochYear, d.today)
		d.AuthorContrib[author] = c
	}
	return c
}

// Visited reports whether repo ("owner/name") has been collected before.
func (d *Dataset) Visited(repo string) bool {
	_, ok := d.visited[repo]
	return ok
}

// MarkVisited records repo as collected. Idempotent.
func (d *Dataset) MarkVisited(repo string) {
	if _, ok := d.visited[repo]; ok {
		return
	}
	d.visited[repo] = struct{}{}
	d.ReposVisited = append(d.ReposVisited, repo)
	sort.Strings(d.ReposVisited)
}

// ResumeDate returns the created-on-or-after date for collecting repo: the
// date of the last completed run if this repo has been seen before, the
// epoch date otherwise. A repo added to the target list later than the
// others must be walked from the beginning even when last_updated is recent.
func (d *Dataset) ResumeDate(repo, epochDate string) string {
	if d.Visited(repo) && d.LastUpdated != "" {
		return d.LastUpdated
	}
	return epochDate
}

// SetLastUpdated records t as the date of the last completed run.
func (d *Dataset) SetLastUpdated(t time.Time) {
	d.LastUpdated = t.UTC().Format(dateLayout)
}

// Save writes the dataset to path atomically: marshal to a temp file in the
// same directory, fsync, then rename over the destination. Readers never
// observe a partially written file.
func (d *Dataset) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling dataset: %w", err)
	}
	data = append(data, '\n')

	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating temp dataset file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp dataset file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing temp dataset file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp dataset file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing dataset file: %w", err)
	}

	return nil
}
