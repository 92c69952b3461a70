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

// Package report turns a collected dataset into per-author and overall
// monthly activity series, with a fitted trend line and summary statistics.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/contribgraph/contribgraph/internal/dataset"
)

// monthLayout matches the dataset's monthly counter keys.
const monthLayout = "2006-01"

// Options controls which slice of the dataset the report covers.
type Options struct {
	// Authors restricts the report to these logins. Empty means everyone.
	Authors []string

	// Anonymize replaces logins with stable "Developer N" labels, assigned
	// over the sorted login list so the mapping is deterministic.
	Anonymize bool

	// Since drops months strictly before this date. Zero means no cutoff.
	Since time.Time
}

// Point is one month's activity: the equal-weight sum of pull requests,
// reviews, PR comments, issues, and issue comments.
type Point struct {
	Month string
	Value int
}

// Series is a labeled sequence of monthly points in ascending month order.
type Series struct {
	Label  string
	Points []Point
}

// TrendPoint is one month of the fitted quadratic trend.
type TrendPoint struct {
	Month string
	Value float64
}

// Summary describes the overall series.
type Summary struct {
	Mean   float64
	Median float64
	Max    float64
}

// Report is the assembled output: one series per author, the overall sum,
// the quadratic trend over the overall series (nil with fewer than three
// points), and summary statistics.
type Report struct {
	Authors []Series
	Overall Series
	Trend   []TrendPoint
	Summary Summary
}

// Build assembles a report from ds. Authors are processed in sorted login
// order so output and anonymized labels are deterministic.
func Build(ds *dataset.Dataset, opts Options) (*Report, error) {
	logins := selectLogins(ds, opts.Authors)
	if len(logins) == 0 {
		return nil, fmt.Errorf("no matching authors in dataset")
	}

	rep := &Report{}
	overall := make(map[string]int)

	for i, login := range logins {
		series := authorSeries(ds.AuthorContrib[login], opts.Since)
		if len(series.Points) == 0 {
			continue
		}

		series.Label = login
		if opts.Anonymize {
			series.Label = fmt.Sprintf("Developer %d", i+1)
		}
		rep.Authors = append(rep.Authors, series)

		for _, p := range series.Points {
			overall[p.Month] += p.Value
		}
	}

	if len(overall) == 0 {
		return nil, fmt.Errorf("no activity matches the report filters")
	}

	rep.Overall = Series{Label: "overall", Points: sortPoints(overall)}
	rep.Trend = fitTrend(rep.Overall.Points)

	values := make([]float64, len(rep.Overall.Points))
	for i, p := range rep.Overall.Points {
		values[i] = float64(p.Value)
	}
	rep.Summary.Mean, _ = stats.Mean(values)
	rep.Summary.Median, _ = stats.Median(values)
	rep.Summary.Max, _ = stats.Max(values)

	return rep, nil
}

// selectLogins returns the logins to report on, sorted. With a filter, only
// logins present in the dataset survive.
func selectLogins(ds *dataset.Dataset, filter []string) []string {
	var logins []string
	if len(filter) == 0 {
		for login := range ds.AuthorContrib {
			logins = append(logins, login)
		}
	} else {
		for _, login := range filter {
			if _, ok := ds.AuthorContrib[login]; ok {
				logins = append(logins, login)
			}
		}
	}
	sort.Strings(logins)
	return logins
}

// authorSeries sums the five counter maps month by month, dropping months
// before since. Months present in any counter map are included, so a
// zero-activity month stored by the collector yields an explicit zero point.
func authorSeries(counts *dataset.AuthorCounts, since time.Time) Series {
	months := make(map[string]int)
	for _, m := range []map[string]int{
		counts.PRsByMonth,
		counts.ReviewsByMonth,
		counts.PRCommentsByMonth,
		counts.IssuesByMonth,
		counts.IssueCommentsByMonth,
	} {
		for month, n := range m {
			monthDate, err := time.Parse(monthLayout, month)
			if err != nil {
				continue
			}
			if !since.IsZero() && monthDate.Before(since) {
				continue
			}
			months[month] += n
		}
	}
	return Series{Points: sortPoints(months)}
}

func sortPoints(byMonth map[string]int) []Point {
	points := make([]Point, 0, len(byMonth))
	for month, value := range byMonth {
		points = append(points, Point{Month: month, Value: value})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Month < points[j].Month })
	return points
}
