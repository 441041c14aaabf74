// Package pagination parses GitHub Link headers and resolves exact item
// counts of paginated list endpoints without walking every page.
package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Links maps a relation name ("next", "last", ...) to its target URL.
type Links map[string]*url.URL

// MalformedPaginationError reports a Link header that could not be used to
// locate the last page.
type MalformedPaginationError struct {
	Header string
	Reason string
}

func (e *MalformedPaginationError) Error() string {
	return fmt.Sprintf("malformed pagination header %q: %s", e.Header, e.Reason)
}

func malformed(header, format string, args ...interface{}) error {
	return &MalformedPaginationError{Header: header, Reason: fmt.Sprintf(format, args...)}
}

// ParseLinkHeader parses a header of the form
// `<url>; rel="next", <url>; rel="last"`. An empty header yields empty Links.
func ParseLinkHeader(header string) (Links, error) {
	links := make(Links)
	if strings.TrimSpace(header) == "" {
		return links, nil
	}

	for _, entry := range splitEntries(header) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if !strings.HasPrefix(entry, "<") {
			return nil, malformed(header, "entry %q does not start with '<'", entry)
		}
		end := strings.Index(entry, ">")
		if end < 0 {
			return nil, malformed(header, "entry %q has no closing '>'", entry)
		}

		target, err := url.Parse(entry[1:end])
		if err != nil {
			return nil, malformed(header, "invalid url: %v", err)
		}

		rels := relations(entry[end+1:])
		if len(rels) == 0 {
			return nil, malformed(header, "entry %q has no rel parameter", entry)
		}
		for _, rel := range rels {
			links[rel] = target
		}
	}

	return links, nil
}

// Page returns the "page" query parameter of the given relation. ok is false
// when the relation is absent.
func (l Links) Page(rel string) (page int, ok bool, err error) {
	target, found := l[rel]
	if !found {
		return 0, false, nil
	}

	raw := target.Query().Get("page")
	if raw == "" {
		return 0, true, malformed(target.String(), "rel=%q has no page parameter", rel)
	}
	page, err = strconv.Atoi(raw)
	if err != nil {
		return 0, true, malformed(target.String(), "rel=%q page %q is not a number", rel, raw)
	}
	if page < 1 {
		return 0, true, malformed(target.String(), "rel=%q page %d is not positive", rel, page)
	}
	return page, true, nil
}

// splitEntries splits on commas that are not inside <...>.
func splitEntries(s string) []string {
	var entries []string
	var current strings.Builder
	inBracket := false

	for _, ch := range s {
		switch {
		case ch == '<':
			inBracket = true
		case ch == '>':
			inBracket = false
		case ch == ',' && !inBracket:
			entries = append(entries, current.String())
			current.Reset()
			continue
		}
		current.WriteRune(ch)
	}
	if current.Len() > 0 {
		entries = append(entries, current.String())
	}
	return entries
}

func relations(params string) []string {
	for _, param := range strings.Split(params, ";") {
		key, value, found := strings.Cut(strings.TrimSpace(param), "=")
		if !found || !strings.EqualFold(strings.TrimSpace(key), "rel") {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		return strings.Fields(value)
	}
	return nil
}
