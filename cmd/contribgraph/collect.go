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
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/contribgraph/contribgraph/internal/aggregate"
	"github.com/contribgraph/contribgraph/internal/config"
	"github.com/contribgraph/contribgraph/internal/dataset"
	cgerrors "github.com/contribgraph/contribgraph/internal/errors"
	"github.com/contribgraph/contribgraph/internal/github"
)

// collectOptions carries the resolved collect flags.
type collectOptions struct {
	orgs       []string
	repos      []string
	outputFile string
}

// collectCmd represents the collect command
func newCollectCommand() *cobra.Command {
	var (
		token      string
		orgs       []string
		repos      []string
		outputFile string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect contribution activity into the local dataset",
		Long: `Collect per-author monthly contribution counts from GitHub into the local
dataset file. Targets are given as explicit repositories (--repos org/repo)
or whole organizations (--orgs org); at least one target is required.

Repositories already present in the dataset are only walked from the date of
the last completed run. The dataset is saved after every repository, so an
interrupted run loses at most one repository's worth of work.

Authentication is optional but strongly recommended:
  - Use --token flag to provide a token directly
  - Or set the GITHUB_TOKEN environment variable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			retryCfg := &github.RetryConfig{
				TransientDelay: time.Duration(cfg.Retry.TransientDelaySeconds) * time.Second,
				StatusDelay:    time.Duration(cfg.Retry.StatusDelaySeconds) * time.Second,
				MaxAttempts:    cfg.Retry.MaxAttempts,
			}
			client := github.NewRetryClient(
				github.NewGraphQLClient(getToken(token, cfg.GitHub.TokenEnv), cfg.GitHub.GraphQLEndpoint),
				retryCfg,
			)

			opts := collectOptions{orgs: orgs, repos: repos, outputFile: outputFile}
			return runCollect(cmd.Context(), client, opts, cfg, time.Now().UTC())
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "GitHub personal access token (overrides the token env var)")
	cmd.Flags().StringSliceVarP(&orgs, "orgs", "o", nil, "Organizations to collect (all non-empty repositories)")
	cmd.Flags().StringSliceVar(&repos, "repos", nil, "Repositories to collect, as org/repo")
	cmd.Flags().StringVar(&outputFile, "output-file", "", "Dataset file path, written as JSON (default from config)")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path")

	return cmd
}

// runCollect executes the collect command against the given client.
func runCollect(ctx context.Context, client github.Client, opts collectOptions, cfg *config.Config, now time.Time) error {
	if len(opts.orgs) == 0 && len(opts.repos) == 0 {
		return fmt.Errorf("%w: use --repos or --orgs", cgerrors.ErrNoTargets)
	}

	targets := make(map[string]struct{})
	for _, spec := range opts.repos {
		owner, repo, err := parseRepository(spec)
		if err != nil {
			return err
		}
		targets[owner+"/"+repo] = struct{}{}
	}

	orgs := append([]string(nil), opts.orgs...)
	sort.Strings(orgs)
	for _, org := range orgs {
		names, err := github.ListAllOrgRepositories(ctx, client, org)
		if err != nil {
			return err
		}
		for _, name := range names {
			targets[org+"/"+name] = struct{}{}
		}
	}

	outputFile := opts.outputFile
	if outputFile == "" {
		outputFile = cfg.Defaults.OutputFile
	}

	ds, err := dataset.Load(outputFile, cfg.EpochYear(), now)
	if err != nil {
		return err
	}
	agg := aggregate.New(ds)

	repos := make([]string, 0, len(targets))
	for repo := range targets {
		repos = append(repos, repo)
	}
	sort.Strings(repos)

	stats := newCollectStats()
	progress, _ := pterm.DefaultProgressbar.WithTotal(len(repos)).WithTitle("Collecting").Start()
	// Stopping twice is harmless; the deferred stop keeps error messages from
	// printing under a live progress line.
	defer progress.Stop()

	for _, full := range repos {
		owner, repo, err := parseRepository(full)
		if err != nil {
			return err
		}

		since := ds.ResumeDate(full, cfg.Defaults.EpochDate)
		progress.UpdateTitle(fmt.Sprintf("Collecting %s since %s", full, since))

		prs, err := github.FetchAllPullRequests(ctx, client, owner, repo, since, cfg.Defaults.PageSize)
		if err != nil {
			return err
		}
		issues, err := github.FetchAllIssues(ctx, client, owner, repo, since, cfg.Defaults.PageSize)
		if err != nil {
			return err
		}

		agg.AddPullRequests(prs)
		agg.AddIssues(issues)
		stats.recordRepo(prs, issues)

		// Persist after every repository so an interrupted run keeps its
		// progress up to the last completed one.
		ds.MarkVisited(full)
		if err := ds.Save(outputFile); err != nil {
			return err
		}

		progress.Increment()
	}
	progress.Stop()

	ds.SetLastUpdated(now)
	if err := ds.Save(outputFile); err != nil {
		return err
	}

	stats.print(len(ds.AuthorContrib), outputFile)
	return nil
}

// parseRepository parses an org/repo string into owner and repo components
func parseRepository(spec string) (owner, repo string, err error) {
	parts := strings.Split(spec, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: expected org/repo, got %q", cgerrors.ErrBadRepoSpec, spec)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("%w: expected org/repo, got %q", cgerrors.ErrBadRepoSpec, spec)
	}

	return owner, repo, nil
}

// getToken returns the GitHub token from the flag or the configured
// environment variable.
func getToken(flagToken, tokenEnv string) string {
	if flagToken != "" {
		return flagToken
	}
	return os.Getenv(tokenEnv)
}

// collectStats tracks what a run touched for the end-of-run summary.
type collectStats struct {
	startTime time.Time
	repos     int
	prs       int
	reviews   int
	comments  int
	issues    int
}

func newCollectStats() *collectStats {
	return &collectStats{startTime: time.Now()}
}

func (s *collectStats) recordRepo(prs map[string]*github.PullRequest, issues map[string]*github.Issue) {
	s.repos++
	s.prs += len(prs)
	for _, pr := range prs {
		s.reviews += len(pr.Reviews)
		s.comments += len(pr.Comments)
	}
	s.issues += len(issues)
	for _, issue := range issues {
		s.comments += len(issue.Comments)
	}
}

func (s *collectStats) print(authors int, outputFile string) {
	elapsed := time.Since(s.startTime).Round(time.Second)
	pterm.Success.Printfln("Collected %d repositories in %s", s.repos, elapsed)
	pterm.Info.Printfln("  %d pull requests, %d reviews, %d comments, %d issues across %d authors",
		s.prs, s.reviews, s.comments, s.issues, authors)
	pterm.Info.Printfln("  Dataset written to %s", outputFile)
}
