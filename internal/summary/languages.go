package summary

import (
	"sort"
	"strconv"
	"strings"

	"profile-summary/internal/linguist"

	"github.com/shopspring/decimal"
)

// maxNameLength is the longest display name kept before an alias is tried.
const maxNameLength = 6

var hundred = decimal.NewFromInt(100)

type LanguageLookup interface {
	Lookup(key string) (linguist.Language, bool)
}

type languageTotal struct {
	key   string
	bytes int64
}

// Languages merges the language breakdown of every repository into global
// usage shares. Output order is the order in which each language was first
// encountered. The top language absorbs the rounding remainder so that the
// Percent values sum to exactly 100.
func Languages(repos []RepoStat, lookup LanguageLookup) []LanguageUsage {
	totals, grandTotal := sumLanguages(repos)
	if grandTotal <= 0 {
		return []LanguageUsage{}
	}

	usages := make([]LanguageUsage, 0, len(totals))
	sum := decimal.Zero
	top := 0
	for i, t := range totals {
		name, color := resolveLanguage(t.key, lookup)
		raw := roundSignificant(float64(t.bytes) / float64(grandTotal) * 100)
		pct := decimal.NewFromFloat(raw)
		sum = sum.Add(pct)

		usages = append(usages, LanguageUsage{
			Key:        t.key,
			Name:       name,
			Color:      color,
			Bytes:      t.bytes,
			RawPercent: raw,
			Percent:    pct,
		})

		if t.bytes > totals[top].bytes {
			top = i
		}
	}

	remainder := hundred.Sub(sum)
	usages[top].Percent = usages[top].Percent.Add(remainder)
	usages[top].RawPercent = usages[top].Percent.InexactFloat64()

	for i := range usages {
		usages[i].Usage = usages[i].Percent.String() + "%"
	}
	return usages
}

func sumLanguages(repos []RepoStat) ([]languageTotal, int64) {
	var totals []languageTotal
	index := make(map[string]int)
	var grandTotal int64

	for _, repo := range repos {
		for _, lang := range repo.Languages {
			if lang.Bytes <= 0 {
				continue
			}
			grandTotal += lang.Bytes
			if i, ok := index[lang.Key]; ok {
				totals[i].bytes += lang.Bytes
				continue
			}
			index[lang.Key] = len(totals)
			totals = append(totals, languageTotal{key: lang.Key, bytes: lang.Bytes})
		}
	}
	return totals, grandTotal
}

func resolveLanguage(key string, lookup LanguageLookup) (name, color string) {
	lang, ok := lookup.Lookup(key)
	if !ok {
		return strings.ToLower(key), linguist.DefaultColor
	}

	color = lang.Color
	if color == "" {
		color = linguist.DefaultColor
	}
	return displayName(lang), color
}

// displayName shortens long names to their shortest alias when one exists.
func displayName(lang linguist.Language) string {
	name := lang.ShortName()
	if len(name) <= maxNameLength || len(lang.Aliases) == 0 {
		return name
	}

	aliases := append([]string(nil), lang.Aliases...)
	sort.SliceStable(aliases, func(i, j int) bool {
		return len(aliases[i]) < len(aliases[j])
	})
	if len(aliases[0]) < len(name) {
		return aliases[0]
	}
	return name
}

// roundSignificant rounds to two significant digits: 67.31 -> 67,
// 4.567 -> 4.6, 0.01234 -> 0.012.
func roundSignificant(v float64) float64 {
	// FormatFloat output always parses back.
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 2, 64), 64)
	return rounded
}
