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

package report

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/contribgraph/contribgraph/internal/dataset"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildSumsBucketsEquallyPerMonth(t *testing.T) {
	ds := dataset.New(2023, date(2023, time.February, 15))
	alice := ds.Counts("alice")
	alice.AddPullRequest(date(2023, time.January, 5))
	alice.AddPullRequest(date(2023, time.January, 20))
	alice.AddReview(date(2023, time.February, 1))

	rep, err := Build(ds, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(rep.Authors) != 1 || rep.Authors[0].Label != "alice" {
		t.Fatalf("authors = %+v, want single alice series", rep.Authors)
	}
	want := []Point{{Month: "2023-01", Value: 2}, {Month: "2023-02", Value: 1}}
	if !reflect.DeepEqual(rep.Authors[0].Points, want) {
		t.Errorf("alice points = %v, want %v", rep.Authors[0].Points, want)
	}
	if !reflect.DeepEqual(rep.Overall.Points, want) {
		t.Errorf("overall points = %v, want %v", rep.Overall.Points, want)
	}
}

func TestBuildFiltersAuthors(t *testing.T) {
	ds := dataset.New(2023, date(2023, time.January, 31))
	ds.Counts("alice").AddPullRequest(date(2023, time.January, 5))
	ds.Counts("bob").AddIssue(date(2023, time.January, 6))

	rep, err := Build(ds, Options{Authors: []string{"bob"}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(rep.Authors) != 1 || rep.Authors[0].Label != "bob" {
		t.Fatalf("authors = %+v, want only bob", rep.Authors)
	}
	if rep.Overall.Points[0].Value != 1 {
		t.Errorf("overall includes filtered-out authors: %v", rep.Overall.Points)
	}
}

func TestBuildUnknownAuthorFails(t *testing.T) {
	ds := dataset.New(2023, date(2023, time.January, 31))
	ds.Counts("alice").AddPullRequest(date(2023, time.January, 5))

	if _, err := Build(ds, Options{Authors: []string{"nobody"}}); err == nil {
		t.Fatal("expected error for unknown author filter")
	}
}

func TestBuildAnonymizeAssignsStableLabels(t *testing.T) {
	ds := dataset.New(2023, date(2023, time.January, 31))
	ds.Counts("zoe").AddPullRequest(date(2023, time.January, 5))
	ds.Counts("adam").AddIssue(date(2023, time.January, 6))

	rep, err := Build(ds, Options{Anonymize: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Labels follow sorted login order: adam before zoe.
	if got := rep.Authors[0].Label; got != "Developer 1" {
		t.Errorf("first label = %q, want Developer 1", got)
	}
	if got := rep.Authors[1].Label; got != "Developer 2" {
		t.Errorf("second label = %q, want Developer 2", got)
	}
}

func TestBuildSinceDropsEarlierMonths(t *testing.T) {
	ds := dataset.New(2023, date(2023, time.March, 31))
	alice := ds.Counts("alice")
	alice.AddPullRequest(date(2023, time.January, 5))
	alice.AddPullRequest(date(2023, time.March, 5))

	rep, err := Build(ds, Options{Since: date(2023, time.February, 1)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for _, p := range rep.Overall.Points {
		if p.Month < "2023-02" {
			t.Errorf("month %s included despite since filter", p.Month)
		}
	}
	// 2023-02 is a prefilled zero month on or after the cutoff, so it stays.
	want := []Point{{Month: "2023-02", Value: 0}, {Month: "2023-03", Value: 1}}
	if !reflect.DeepEqual(rep.Overall.Points, want) {
		t.Errorf("overall points = %v, want %v", rep.Overall.Points, want)
	}
}

func TestTrendFitsExactParabola(t *testing.T) {
	ds := dataset.New(2023, date(2023, time.May, 31))
	alice := ds.Counts("alice")

	// y = x^2 + 2x + 3 over x = 0..4 (months 2023-01 .. 2023-05).
	values := []int{3, 6, 11, 18, 27}
	for i, v := range values {
		month := date(2023, time.January, 15).AddDate(0, i, 0)
		for j := 0; j < v; j++ {
			alice.AddPullRequest(month)
		}
	}

	rep, err := Build(ds, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(rep.Trend) != len(values) {
		t.Fatalf("trend has %d points, want %d", len(rep.Trend), len(values))
	}
	for i, tp := range rep.Trend {
		if math.Abs(tp.Value-float64(values[i])) > 1e-6 {
			t.Errorf("trend[%d] = %g, want %d", i, tp.Value, values[i])
		}
	}
}

func TestTrendNeedsThreePoints(t *testing.T) {
	ds := dataset.New(2023, date(2023, time.February, 28))
	ds.Counts("alice").AddPullRequest(date(2023, time.January, 5))

	rep, err := Build(ds, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rep.Trend != nil {
		t.Errorf("trend = %v, want nil for 2 points", rep.Trend)
	}
}

func TestSummaryStatistics(t *testing.T) {
	ds := dataset.New(2023, date(2023, time.March, 31))
	alice := ds.Counts("alice")
	alice.AddPullRequest(date(2023, time.January, 5)) // 2023-01: 1
	alice.AddIssue(date(2023, time.February, 5))
	alice.AddReview(date(2023, time.February, 6)) // 2023-02: 2
	for i := 0; i < 6; i++ {
		alice.AddPRComment(date(2023, time.March, 5)) // 2023-03: 6
	}

	rep, err := Build(ds, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if math.Abs(rep.Summary.Mean-3) > 1e-9 {
		t.Errorf("mean = %g, want 3", rep.Summary.Mean)
	}
	if math.Abs(rep.Summary.Median-2) > 1e-9 {
		t.Errorf("median = %g, want 2", rep.Summary.Median)
	}
	if math.Abs(rep.Summary.Max-6) > 1e-9 {
		t.Errorf("max = %g, want 6", rep.Summary.Max)
	}
}
