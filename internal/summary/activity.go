package summary

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// CommitAverage is the mean number of commits per repository, rounded down.
func CommitAverage(repos []RepoStat) ActivityStat {
	average := 0
	if len(repos) > 0 {
		commits := make(stats.Float64Data, 0, len(repos))
		for _, r := range repos {
			commits = append(commits, float64(r.TotalCommits))
		}
		if mean, err := stats.Mean(commits); err == nil {
			average = int(math.Floor(mean))
		}
	}

	return ActivityStat{
		Key:          KeyCommitsAverage,
		Title:        "Commits\nAverage",
		Value:        average,
		Description:  describeRepos(len(repos)),
		Repositories: len(repos),
	}
}

// RecentCommits sums the owner's commits of the most recent week. Repositories
// without commits that week are left out of both the total and the count.
func RecentCommits(repos []RepoStat) ActivityStat {
	total, contributing := sumPositive(repos, RepoStat.LastWeekCommits)
	return ActivityStat{
		Key:          KeyRecentCommits,
		Title:        "Commits in\nlast 7 days",
		Value:        total,
		Description:  describeRepos(contributing),
		Repositories: contributing,
	}
}

// RecentIssuesClosed sums issues closed in the trailing 30 days with the same
// exclusion rule as RecentCommits.
func RecentIssuesClosed(repos []RepoStat) ActivityStat {
	total, contributing := sumPositive(repos, func(r RepoStat) int {
		return r.IssuesClosedLast30Days
	})
	return ActivityStat{
		Key:          KeyRecentIssues,
		Title:        "Issues closed\nin last 30 days",
		Value:        total,
		Description:  describeRepos(contributing),
		Repositories: contributing,
	}
}

// Stats returns the three activity stats in display order.
func Stats(repos []RepoStat) []ActivityStat {
	return []ActivityStat{
		CommitAverage(repos),
		RecentCommits(repos),
		RecentIssuesClosed(repos),
	}
}

func sumPositive(repos []RepoStat, value func(RepoStat) int) (total, repositories int) {
	for _, r := range repos {
		if v := value(r); v > 0 {
			total += v
			repositories++
		}
	}
	return total, repositories
}

func describeRepos(n int) string {
	return fmt.Sprintf("in %d repo(s)", n)
}
