// Package linguist resolves the language keys reported by GitHub to the
// color, editor mode and aliases github/linguist assigns them.
package linguist

import (
	"strings"

	"profile-summary/internal/cache"

	"github.com/go-enry/go-enry/v2"
)

// DefaultColor is used for languages linguist assigns no color to.
const DefaultColor = "#586069"

type Language struct {
	Name    string
	Color   string
	AceMode string
	Aliases []string
}

// ShortName is the Ace editor mode of the language, "c_cpp" for C++ or
// "sh" for Shell. Languages without one fall back to the lowercase name.
func (l Language) ShortName() string {
	if l.AceMode == "" {
		return strings.ToLower(l.Name)
	}
	return l.AceMode
}

type resolution struct {
	lang  Language
	found bool
}

type Table struct {
	memo *cache.Cache[resolution]
}

func New() *Table {
	return &Table{memo: cache.New[resolution](cache.NoExpiration)}
}

// Lookup resolves a language key. Exact linguist names are tried first,
// then aliases and lowercase names.
func (t *Table) Lookup(key string) (Language, bool) {
	r := t.memo.GetOrSet(key, func() resolution {
		return resolve(strings.TrimSpace(key))
	})
	return r.lang, r.found
}

func resolve(key string) resolution {
	info, err := enry.GetLanguageInfo(key)
	if err != nil {
		name, ok := enry.GetLanguageByAlias(key)
		if !ok {
			return resolution{}
		}
		if info, err = enry.GetLanguageInfo(name); err != nil {
			return resolution{}
		}
	}

	return resolution{
		lang: Language{
			Name:    info.Name,
			Color:   info.Color,
			AceMode: info.AceMode,
			Aliases: append([]string(nil), info.Aliases...),
		},
		found: true,
	}
}
