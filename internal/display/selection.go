package display

import (
	"strings"

	"profile-summary/internal/summary"
)

// Selection tracks the one highlighted language. Selecting the highlighted
// language again clears the highlight.
type Selection struct {
	selected string
}

func (s *Selection) Toggle(language string) {
	if s.selected != "" && strings.EqualFold(s.selected, language) {
		s.selected = ""
		return
	}
	s.selected = language
}

func (s *Selection) Selected() string {
	if s == nil {
		return ""
	}
	return s.selected
}

// IsSelected matches either the display name or the raw language key.
func (s *Selection) IsSelected(lang summary.LanguageUsage) bool {
	if s == nil || s.selected == "" {
		return false
	}
	return strings.EqualFold(s.selected, lang.Name) || strings.EqualFold(s.selected, lang.Key)
}
