// Package source decides where a profile summary comes from: a live fetch
// against the GitHub API or a snapshot left by an earlier run. The choice is
// made once, when the DataSource is assembled.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"profile-summary/internal/github"
	"profile-summary/internal/snapshot"
	"profile-summary/internal/summary"
)

var (
	ErrSnapshotMissing  = errors.New("snapshot does not exist")
	ErrSnapshotStale    = errors.New("snapshot is older than the allowed age")
	ErrSnapshotMismatch = errors.New("snapshot belongs to another user")
)

// issueWindow is how far back closed issues are counted.
const issueWindow = 30 * 24 * time.Hour

type DataSource interface {
	Load(ctx context.Context, login string) (*summary.Result, error)
}

// Profiles lists a user's profile and repositories.
type Profiles interface {
	GetUser(ctx context.Context, login string) (summary.User, error)
	GetRepositories(ctx context.Context, login string, skipForks bool) ([]string, error)
}

// LiveFetch queries the API and aggregates the answers.
type LiveFetch struct {
	Profiles  Profiles
	Collector *github.Collector
	Lookup    summary.LanguageLookup
	Now       func() time.Time
	SkipForks bool
	// Deadline bounds the whole fetch; zero means no deadline.
	Deadline time.Duration
	Logger   *slog.Logger
}

func (l *LiveFetch) Load(ctx context.Context, login string) (*summary.Result, error) {
	if l.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Deadline)
		defer cancel()
	}
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := l.Now().UTC()
	since := now.Add(-issueWindow)

	user, err := l.Profiles.GetUser(ctx, login)
	if err != nil {
		return nil, deadlineAware(ctx, "get user", err)
	}

	repos, err := l.Profiles.GetRepositories(ctx, user.Login, l.SkipForks)
	if err != nil {
		return nil, deadlineAware(ctx, "list repositories", err)
	}
	logger.Info("fetching repository statistics", "user", user.Login, "repositories", len(repos))

	stats, skipped, err := l.Collector.CollectAll(ctx, user.Login, repos, since)
	if err != nil {
		return nil, deadlineAware(ctx, "collect repositories", err)
	}

	return summary.Build(user, stats, skipped, l.Lookup, now), nil
}

// deadlineAware reports an exceeded overall deadline as a TimeoutError.
func deadlineAware(ctx context.Context, op string, err error) error {
	var timeoutErr *github.TimeoutError
	if errors.As(err, &timeoutErr) {
		return err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &github.TimeoutError{Op: op, Err: err}
	}
	return err
}

// CachedSnapshot serves the snapshot written by a previous live run.
type CachedSnapshot struct {
	Path string
	// MaxAge rejects older snapshots; zero accepts any age.
	MaxAge time.Duration
	Now    func() time.Time
}

func (c *CachedSnapshot) Load(_ context.Context, login string) (*summary.Result, error) {
	result, err := snapshot.Read(c.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", c.Path, ErrSnapshotMissing)
		}
		return nil, err
	}

	if login != "" && !strings.EqualFold(result.User.Login, login) {
		return nil, fmt.Errorf("%s holds %q: %w", c.Path, result.User.Login, ErrSnapshotMismatch)
	}
	if c.MaxAge > 0 && c.Now().Sub(result.GeneratedAt) > c.MaxAge {
		return nil, fmt.Errorf("%s generated at %s: %w",
			c.Path, result.GeneratedAt.Format(time.RFC3339), ErrSnapshotStale)
	}
	return result, nil
}

// Recording saves every result of Next as a snapshot at Path.
type Recording struct {
	Next DataSource
	Path string
}

func (r *Recording) Load(ctx context.Context, login string) (*summary.Result, error) {
	result, err := r.Next.Load(ctx, login)
	if err != nil {
		return nil, err
	}
	if err := snapshot.Write(r.Path, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Fallback tries Primary and falls back to Secondary on any error.
type Fallback struct {
	Primary   DataSource
	Secondary DataSource
	Logger    *slog.Logger
}

func (f *Fallback) Load(ctx context.Context, login string) (*summary.Result, error) {
	result, err := f.Primary.Load(ctx, login)
	if err == nil {
		return result, nil
	}

	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("falling back to live fetch", "reason", err)
	return f.Secondary.Load(ctx, login)
}

// Select assembles the DataSource for one run. Live results are always
// recorded at snapshotPath; with useCache a usable snapshot is served first.
func Select(useCache bool, snapshotPath string, maxAge time.Duration, live DataSource, now func() time.Time, logger *slog.Logger) DataSource {
	recorded := &Recording{Next: live, Path: snapshotPath}
	if !useCache {
		return recorded
	}
	return &Fallback{
		Primary:   &CachedSnapshot{Path: snapshotPath, MaxAge: maxAge, Now: now},
		Secondary: recorded,
		Logger:    logger,
	}
}
