package summary

import "time"

// Build assembles a Result from already collected repository stats.
// generatedAt is recorded verbatim; no clock is read here.
func Build(user User, repos []RepoStat, skipped []SkippedRepo, lookup LanguageLookup, generatedAt time.Time) *Result {
	return &Result{
		User:        user,
		Languages:   Languages(repos, lookup),
		Stats:       Stats(repos),
		Skipped:     skipped,
		GeneratedAt: generatedAt,
	}
}
