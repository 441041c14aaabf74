// Package summary turns per-repository GitHub statistics into the language
// usage and activity figures shown on a profile summary card. Everything in
// this package is pure: identical inputs produce identical results.
package summary

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Login     string `json:"login"`
	URL       string `json:"url"`
}

// LanguageBytes is one entry of a repository's language breakdown.
type LanguageBytes struct {
	Key   string `json:"key"`
	Bytes int64  `json:"bytes"`
}

// RepoStat is everything collected about a single repository.
type RepoStat struct {
	Name string `json:"name"`
	// Languages keeps the order reported by the API: bytes descending.
	Languages []LanguageBytes `json:"languages"`
	// WeeklyOwnerCommits runs oldest to newest.
	WeeklyOwnerCommits     []int `json:"weekly_owner_commits"`
	TotalCommits           int   `json:"total_commits"`
	IssuesClosedLast30Days int   `json:"issues_closed_last_30_days"`
}

// LastWeekCommits is the owner's commit count for the most recent week, or 0
// when no participation data is available.
func (r RepoStat) LastWeekCommits() int {
	if len(r.WeeklyOwnerCommits) == 0 {
		return 0
	}
	return r.WeeklyOwnerCommits[len(r.WeeklyOwnerCommits)-1]
}

type LanguageUsage struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Bytes int64  `json:"bytes"`
	// RawPercent is the share rounded to two significant digits. The top
	// language also carries the rounding remainder.
	RawPercent float64 `json:"raw_percent"`
	// Percent is exact; the values of one result sum to 100.
	Percent decimal.Decimal `json:"percent"`
	Usage   string          `json:"usage"`
}

const (
	KeyCommitsAverage = "commits_average"
	KeyRecentCommits  = "recent_commits"
	KeyRecentIssues   = "recent_issues"
)

type ActivityStat struct {
	Key          string `json:"key"`
	Title        string `json:"title"`
	Value        int    `json:"value"`
	Description  string `json:"description"`
	Repositories int    `json:"repositories"`
}

// SkippedRepo records a repository left out of the aggregates.
type SkippedRepo struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Result is the complete summary handed to the view and stored in snapshots.
type Result struct {
	User        User            `json:"user"`
	Languages   []LanguageUsage `json:"languages"`
	Stats       []ActivityStat  `json:"stats"`
	Skipped     []SkippedRepo   `json:"skipped,omitempty"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// Stat returns the activity stat with the given key.
func (r *Result) Stat(key string) (ActivityStat, bool) {
	for _, s := range r.Stats {
		if s.Key == key {
			return s, true
		}
	}
	return ActivityStat{}, false
}
