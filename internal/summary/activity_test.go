package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitAverage(t *testing.T) {
	testCases := []struct {
		name          string
		commits       []int
		expectedValue int
		expectedDesc  string
	}{
		{name: "floor of mean", commits: []int{10, 20, 33}, expectedValue: 21, expectedDesc: "in 3 repo(s)"},
		{name: "exact mean", commits: []int{10, 14}, expectedValue: 12, expectedDesc: "in 2 repo(s)"},
		{name: "single repo", commits: []int{7}, expectedValue: 7, expectedDesc: "in 1 repo(s)"},
		{name: "no repos", commits: nil, expectedValue: 0, expectedDesc: "in 0 repo(s)"},
		{name: "repos without commits", commits: []int{0, 0}, expectedValue: 0, expectedDesc: "in 2 repo(s)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repos := make([]RepoStat, 0, len(tc.commits))
			for _, c := range tc.commits {
				repos = append(repos, RepoStat{TotalCommits: c})
			}

			stat := CommitAverage(repos)

			assert.Equal(t, KeyCommitsAverage, stat.Key)
			assert.Equal(t, tc.expectedValue, stat.Value)
			assert.Equal(t, tc.expectedDesc, stat.Description)
			assert.Equal(t, len(tc.commits), stat.Repositories)
		})
	}
}

func TestRecentCommits_ExcludesNonPositiveWeeks(t *testing.T) {
	repos := []RepoStat{
		{Name: "a", WeeklyOwnerCommits: []int{5, 0, 2}},
		{Name: "b", WeeklyOwnerCommits: []int{9, 9, 0}},
		{Name: "c", WeeklyOwnerCommits: []int{1, 4}},
		{Name: "d"},
	}

	stat := RecentCommits(repos)

	assert.Equal(t, KeyRecentCommits, stat.Key)
	assert.Equal(t, 6, stat.Value)
	assert.Equal(t, 2, stat.Repositories)
	assert.Equal(t, "in 2 repo(s)", stat.Description)
}

func TestRecentIssuesClosed(t *testing.T) {
	repos := []RepoStat{
		{IssuesClosedLast30Days: 3},
		{IssuesClosedLast30Days: 0},
		{IssuesClosedLast30Days: 4},
	}

	stat := RecentIssuesClosed(repos)

	assert.Equal(t, KeyRecentIssues, stat.Key)
	assert.Equal(t, 7, stat.Value)
	assert.Equal(t, 2, stat.Repositories)
}

func TestStats_ZeroRepos(t *testing.T) {
	stats := Stats(nil)

	require.Len(t, stats, 3)
	for _, s := range stats {
		assert.Equal(t, 0, s.Value, s.Key)
		assert.Equal(t, 0, s.Repositories, s.Key)
	}
	assert.Equal(t, []string{KeyCommitsAverage, KeyRecentCommits, KeyRecentIssues},
		[]string{stats[0].Key, stats[1].Key, stats[2].Key})
}

func TestBuild_Scenario(t *testing.T) {
	user := User{Name: "The Octocat", Login: "octocat", URL: "https://github.com/octocat"}
	repos := []RepoStat{
		{
			Name:                   "A",
			Languages:              []LanguageBytes{{Key: "JavaScript", Bytes: 300}, {Key: "CSS", Bytes: 100}},
			WeeklyOwnerCommits:     []int{0, 1, 2},
			TotalCommits:           10,
			IssuesClosedLast30Days: 1,
		},
		{
			Name:                   "B",
			Languages:              []LanguageBytes{{Key: "JavaScript", Bytes: 600}},
			WeeklyOwnerCommits:     []int{3, 0},
			TotalCommits:           14,
			IssuesClosedLast30Days: 0,
		},
	}
	generatedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	result := Build(user, repos, nil, testLookup(), generatedAt)

	assert.Equal(t, user, result.User)
	assert.Equal(t, generatedAt, result.GeneratedAt)
	require.Len(t, result.Languages, 2)
	assert.Equal(t, "90%", result.Languages[0].Usage)
	assert.Equal(t, "10%", result.Languages[1].Usage)

	average, ok := result.Stat(KeyCommitsAverage)
	require.True(t, ok)
	assert.Equal(t, 12, average.Value)

	recent, ok := result.Stat(KeyRecentCommits)
	require.True(t, ok)
	assert.Equal(t, 2, recent.Value)
	assert.Equal(t, 1, recent.Repositories)

	issues, ok := result.Stat(KeyRecentIssues)
	require.True(t, ok)
	assert.Equal(t, 1, issues.Value)
	assert.Equal(t, 1, issues.Repositories)

	_, ok = result.Stat("unknown")
	assert.False(t, ok)
}

func TestBuild_IsDeterministic(t *testing.T) {
	repos := []RepoStat{
		{Name: "x", Languages: []LanguageBytes{{Key: "Go", Bytes: 123}, {Key: "Makefile", Bytes: 4}}, TotalCommits: 3},
		{Name: "y", Languages: []LanguageBytes{{Key: "CSS", Bytes: 77}, {Key: "Go", Bytes: 9}}, WeeklyOwnerCommits: []int{1}},
	}
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	first := Build(User{Login: "x"}, repos, nil, testLookup(), at)
	second := Build(User{Login: "x"}, repos, nil, testLookup(), at)

	assert.Equal(t, first, second)
}
