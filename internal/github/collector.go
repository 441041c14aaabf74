package github

import (
	"context"
	"log/slog"
	"time"

	"profile-summary/internal/summary"

	"golang.org/x/sync/errgroup"
)

// RepoSource is the subset of the API a Collector needs per repository.
type RepoSource interface {
	Languages(ctx context.Context, owner, repo string) ([]summary.LanguageBytes, error)
	WeeklyOwnerCommits(ctx context.Context, owner, repo string) ([]int, error)
	CountCommits(ctx context.Context, owner, repo string) (int, error)
	CountClosedIssues(ctx context.Context, owner, repo string, since time.Time) (int, error)
}

// Collector gathers RepoStats, one goroutine per repository and four
// concurrent sub-fetches inside each.
type Collector struct {
	source  RepoSource
	workers int
	strict  bool
	logger  *slog.Logger
}

// NewCollector creates a Collector running at most workers repositories at
// once. In strict mode any repository failure aborts CollectAll.
func NewCollector(source RepoSource, workers int, strict bool, logger *slog.Logger) *Collector {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{
		source:  source,
		workers: workers,
		strict:  strict,
		logger:  logger,
	}
}

// Collect fetches the four statistics of one repository. The first failing
// sub-fetch cancels the others and is returned as a *RepoFetchError.
func (c *Collector) Collect(ctx context.Context, owner, repo string, since time.Time) (summary.RepoStat, error) {
	stat := summary.RepoStat{Name: repo}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stat.Languages, err = c.source.Languages(gctx, owner, repo)
		return err
	})
	g.Go(func() error {
		var err error
		stat.WeeklyOwnerCommits, err = c.source.WeeklyOwnerCommits(gctx, owner, repo)
		return err
	})
	g.Go(func() error {
		var err error
		stat.TotalCommits, err = c.source.CountCommits(gctx, owner, repo)
		return err
	})
	g.Go(func() error {
		var err error
		stat.IssuesClosedLast30Days, err = c.source.CountClosedIssues(gctx, owner, repo, since)
		return err
	})

	if err := g.Wait(); err != nil {
		return summary.RepoStat{}, &RepoFetchError{Repo: repo, Err: err}
	}
	return stat, nil
}

// CollectAll collects every repository and returns the stats in input order.
// Repositories failing for repository-specific reasons are skipped and
// reported; fatal errors abort the run.
func (c *Collector) CollectAll(ctx context.Context, owner string, repos []string, since time.Time) ([]summary.RepoStat, []summary.SkippedRepo, error) {
	collected := make([]*summary.RepoStat, len(repos))
	skipped := make([]*summary.SkippedRepo, len(repos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i, repo := range repos {
		g.Go(func() error {
			stat, err := c.Collect(gctx, owner, repo, since)
			if err == nil {
				c.logger.Debug("collected repository", "repo", repo,
					"commits", stat.TotalCommits, "languages", len(stat.Languages))
				collected[i] = &stat
				return nil
			}
			if c.strict || IsFatal(err) {
				return err
			}

			c.logger.Warn("skipping repository", "repo", repo, "error", err)
			skipped[i] = &summary.SkippedRepo{Name: repo, Reason: err.Error()}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	stats := make([]summary.RepoStat, 0, len(repos))
	var skippedRepos []summary.SkippedRepo
	for i := range repos {
		if collected[i] != nil {
			stats = append(stats, *collected[i])
		}
		if skipped[i] != nil {
			skippedRepos = append(skippedRepos, *skipped[i])
		}
	}
	return stats, skippedRepos, nil
}
