package summary

import (
	"math/rand"
	"testing"

	"profile-summary/internal/linguist"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLookup resolves keys from a fixed set of languages.
type fakeLookup map[string]linguist.Language

func (f fakeLookup) Lookup(key string) (linguist.Language, bool) {
	lang, ok := f[key]
	return lang, ok
}

func testLookup() fakeLookup {
	return fakeLookup{
		"JavaScript":       {Name: "JavaScript", Color: "#f1e05a", AceMode: "javascript", Aliases: []string{"node", "js"}},
		"CSS":              {Name: "CSS", Color: "#663399", AceMode: "css"},
		"Go":               {Name: "Go", Color: "#00ADD8", AceMode: "golang", Aliases: []string{"golang"}},
		"Jupyter Notebook": {Name: "Jupyter Notebook", Color: "#DA5B0B", AceMode: "json", Aliases: []string{"IPython Notebook"}},
		"Makefile":         {Name: "Makefile", Color: "#427819", AceMode: "makefile", Aliases: []string{"bsdmake", "make", "mf"}},
		"Kotlin":           {Name: "Kotlin"},
	}
}

func percentSum(usages []LanguageUsage) decimal.Decimal {
	sum := decimal.Zero
	for _, u := range usages {
		sum = sum.Add(u.Percent)
	}
	return sum
}

func TestLanguages_Scenario(t *testing.T) {
	repos := []RepoStat{
		{Name: "A", Languages: []LanguageBytes{{Key: "JavaScript", Bytes: 300}, {Key: "CSS", Bytes: 100}}},
		{Name: "B", Languages: []LanguageBytes{{Key: "JavaScript", Bytes: 600}}},
	}

	usages := Languages(repos, testLookup())

	require.Len(t, usages, 2)
	assert.Equal(t, "js", usages[0].Name)
	assert.Equal(t, "#f1e05a", usages[0].Color)
	assert.Equal(t, int64(900), usages[0].Bytes)
	assert.Equal(t, "90", usages[0].Percent.String())
	assert.Equal(t, "90%", usages[0].Usage)
	assert.Equal(t, 90.0, usages[0].RawPercent)

	assert.Equal(t, "css", usages[1].Name)
	assert.Equal(t, "10%", usages[1].Usage)
	assert.True(t, percentSum(usages).Equal(hundred))
}

func TestLanguages_RemainderGoesToTopLanguage(t *testing.T) {
	repos := []RepoStat{
		{Languages: []LanguageBytes{{Key: "CSS", Bytes: 100}, {Key: "Go", Bytes: 200}, {Key: "Kotlin", Bytes: 100}}},
		{Languages: []LanguageBytes{{Key: "Go", Bytes: 100}, {Key: "Makefile", Bytes: 7}}},
	}

	usages := Languages(repos, testLookup())

	require.Len(t, usages, 4)
	assert.Equal(t, []string{"CSS", "Go", "Kotlin", "Makefile"},
		[]string{usages[0].Key, usages[1].Key, usages[2].Key, usages[3].Key})

	// 100/507 -> 20, 300/507 -> 59, 100/507 -> 20, 7/507 -> 1.4; remainder -0.4.
	assert.Equal(t, "20%", usages[0].Usage)
	assert.Equal(t, "58.6%", usages[1].Usage)
	assert.Equal(t, 58.6, usages[1].RawPercent)
	assert.Equal(t, "20%", usages[2].Usage)
	assert.Equal(t, "1.4%", usages[3].Usage)
	assert.True(t, percentSum(usages).Equal(hundred))
}

func TestLanguages_TieGoesToFirstEncountered(t *testing.T) {
	repos := []RepoStat{
		{Languages: []LanguageBytes{{Key: "Go", Bytes: 1}, {Key: "CSS", Bytes: 1}, {Key: "Kotlin", Bytes: 1}}},
	}

	usages := Languages(repos, testLookup())

	require.Len(t, usages, 3)
	assert.Equal(t, "34%", usages[0].Usage)
	assert.Equal(t, "33%", usages[1].Usage)
	assert.Equal(t, "33%", usages[2].Usage)
}

func TestLanguages_PercentagesAlwaysSumTo100(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	keys := []string{"JavaScript", "CSS", "Go", "Kotlin", "Makefile", "Jupyter Notebook", "COBOL"}

	for i := 0; i < 500; i++ {
		repos := make([]RepoStat, 1+rng.Intn(6))
		for r := range repos {
			for _, k := range keys {
				if rng.Intn(2) == 0 {
					continue
				}
				// Mix huge and tiny byte counts so some shares round to
				// very small values.
				bytes := rng.Int63n(1_000_000)
				if rng.Intn(3) == 0 {
					bytes = 1 + rng.Int63n(10)
				}
				repos[r].Languages = append(repos[r].Languages, LanguageBytes{Key: k, Bytes: bytes})
			}
		}

		usages := Languages(repos, testLookup())
		if len(usages) == 0 {
			continue
		}
		assert.True(t, percentSum(usages).Equal(hundred), "case %d summed to %s", i, percentSum(usages))
	}
}

func TestLanguages_EmptyInputs(t *testing.T) {
	assert.Empty(t, Languages(nil, testLookup()))
	assert.Empty(t, Languages([]RepoStat{{Name: "empty"}}, testLookup()))
	assert.Empty(t, Languages([]RepoStat{{Languages: []LanguageBytes{{Key: "Go", Bytes: 0}}}}, testLookup()))
}

func TestLanguages_Names(t *testing.T) {
	testCases := []struct {
		key          string
		expectedName string
		expectedHex  string
	}{
		{key: "JavaScript", expectedName: "js", expectedHex: "#f1e05a"},
		{key: "Go", expectedName: "golang", expectedHex: "#00ADD8"},
		{key: "Makefile", expectedName: "mf", expectedHex: "#427819"},
		{key: "Jupyter Notebook", expectedName: "json", expectedHex: "#DA5B0B"},
		{key: "Kotlin", expectedName: "kotlin", expectedHex: linguist.DefaultColor},
		{key: "COBOL", expectedName: "cobol", expectedHex: linguist.DefaultColor},
	}

	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			usages := Languages([]RepoStat{{Languages: []LanguageBytes{{Key: tc.key, Bytes: 10}}}}, testLookup())
			require.Len(t, usages, 1)
			assert.Equal(t, tc.expectedName, usages[0].Name)
			assert.Equal(t, tc.expectedHex, usages[0].Color)
			assert.Equal(t, "100%", usages[0].Usage)
		})
	}
}

func TestLanguages_NamesFromLinguist(t *testing.T) {
	table := linguist.New()

	testCases := []struct {
		key          string
		expectedName string
	}{
		{key: "Shell", expectedName: "sh"},
		{key: "C++", expectedName: "c_cpp"},
		{key: "JavaScript", expectedName: "js"},
		{key: "Julia", expectedName: "julia"},
	}

	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			name, color := resolveLanguage(tc.key, table)
			assert.Equal(t, tc.expectedName, name)
			assert.NotEqual(t, linguist.DefaultColor, color)
		})
	}
}

func TestDisplayNameDoesNotReorderAliases(t *testing.T) {
	lang := linguist.Language{Name: "JavaScript", AceMode: "javascript", Aliases: []string{"node", "js"}}
	assert.Equal(t, "js", displayName(lang))
	assert.Equal(t, []string{"node", "js"}, lang.Aliases)
}

func TestRoundSignificant(t *testing.T) {
	testCases := []struct {
		in       float64
		expected float64
	}{
		{in: 67.31, expected: 67},
		{in: 66.666, expected: 67},
		{in: 33.333, expected: 33},
		{in: 4.567, expected: 4.6},
		{in: 0.01234, expected: 0.012},
		{in: 100, expected: 100},
		{in: 0, expected: 0},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, roundSignificant(tc.in), "round(%v)", tc.in)
	}
}
