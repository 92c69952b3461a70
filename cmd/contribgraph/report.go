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

package main

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/contribgraph/contribgraph/internal/config"
	"github.com/contribgraph/contribgraph/internal/dataset"
	cgerrors "github.com/contribgraph/contribgraph/internal/errors"
	"github.com/contribgraph/contribgraph/internal/report"
)

// reportCmd represents the report command
func newReportCommand() *cobra.Command {
	var (
		authors    []string
		anonymize  bool
		since      string
		inputFile  string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render an activity report from the collected dataset",
		Long: `Render per-author and overall monthly activity from the collected dataset.
Each month's value is the equal-weight sum of pull requests, reviews, PR
comments, issues, and issue comments. The overall series carries a fitted
quadratic trend when at least three months are in range.

By default the report covers the last 30 days; use --since YYYY-MM to widen
the window.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			sinceDate, err := parseSinceMonth(since, time.Now().UTC())
			if err != nil {
				return err
			}

			if inputFile == "" {
				inputFile = cfg.Defaults.OutputFile
			}
			ds, err := dataset.Read(inputFile)
			if err != nil {
				return fmt.Errorf("reading dataset: %w (run collect first?)", err)
			}

			rep, err := report.Build(ds, report.Options{
				Authors:   authors,
				Anonymize: anonymize,
				Since:     sinceDate,
			})
			if err != nil {
				return err
			}

			renderReport(rep)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&authors, "authors", "a", nil, "Only report on these logins")
	cmd.Flags().BoolVar(&anonymize, "anonymize", false, "Replace logins with Developer N labels")
	cmd.Flags().StringVarP(&since, "since", "s", "", "Earliest month to include, as YYYY-MM (default: 30 days ago)")
	cmd.Flags().StringVar(&inputFile, "input-file", "", "Dataset file path, JSON as written by collect (default from config)")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path")

	return cmd
}

// parseSinceMonth parses a YYYY-MM flag value into the first day of that
// month. An empty value defaults to 30 days before now, matching the
// "recent activity" report most runs want.
func parseSinceMonth(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return now.AddDate(0, 0, -30), nil
	}
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expected YYYY-MM, got %q", cgerrors.ErrBadSinceMonth, value)
	}
	return t, nil
}

// renderReport prints the report: one activity line per author, a bar chart
// of the overall series, the fitted trend, and summary statistics.
func renderReport(rep *report.Report) {
	for _, series := range rep.Authors {
		pterm.DefaultSection.Println(series.Label)
		for _, p := range series.Points {
			pterm.Printfln("  %s  %d", p.Month, p.Value)
		}
	}

	pterm.DefaultSection.Println("Overall activity")
	bars := make([]pterm.Bar, 0, len(rep.Overall.Points))
	for _, p := range rep.Overall.Points {
		bars = append(bars, pterm.Bar{Label: p.Month, Value: p.Value})
	}
	// Render errors only occur for empty bar sets, which Build already rules out.
	_ = pterm.DefaultBarChart.WithHorizontal().WithShowValue().WithBars(bars).Render()

	if rep.Trend != nil {
		pterm.DefaultSection.Println("Trend (quadratic fit)")
		for _, tp := range rep.Trend {
			pterm.Printfln("  %s  %.1f", tp.Month, tp.Value)
		}
	}

	pterm.DefaultSection.Println("Summary")
	pterm.Printfln("  mean %.1f, median %.1f, max %.0f contributions/month",
		rep.Summary.Mean, rep.Summary.Median, rep.Summary.Max)
}
