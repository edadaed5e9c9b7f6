package toc

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidPattern indicates an external-reference pattern failed to compile.
var ErrInvalidPattern = errors.New("invalid external pattern")

// DefaultExternalPatterns classify entries that link away from the corpus:
// bare web links, the marketing site, the source-control host and
// boilerplate navigation entries.
var DefaultExternalPatterns = []string{
	`https?://`,
	`github\.com`,
	`navixy\.com`,
	`Back to.*website`,
	`GitHub repository`,
	`User documentation`,
	`Contact us`,
	`Resources`,
}

// Filter classifies descriptor entries as external.
type Filter struct {
	patterns []*regexp.Regexp
}

// NewFilter compiles DefaultExternalPatterns plus extra. Matching is
// case-insensitive.
func NewFilter(extra ...string) (*Filter, error) {
	all := make([]string, 0, len(DefaultExternalPatterns)+len(extra))
	all = append(all, DefaultExternalPatterns...)
	all = append(all, extra...)
	return NewFilterWithPatterns(all)
}

// NewFilterWithPatterns compiles exactly the given patterns.
func NewFilterWithPatterns(patterns []string) (*Filter, error) {
	f := &Filter{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, p, err)
		}
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// IsExternal reports whether an entry with this title and URI points outside
// the corpus.
func (f *Filter) IsExternal(title, uri string) bool {
	if f == nil {
		return false
	}
	text := title + " " + uri
	for _, re := range f.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// DropReason explains why an entry was removed.
type DropReason string

const (
	DropExternal   DropReason = "external"
	DropEmptyGroup DropReason = "empty group"
)

// Dropped records one removed entry.
type Dropped struct {
	Title  string
	URI    string
	Depth  int
	Reason DropReason
}

// FilterReport lists the entries removed while filtering.
type FilterReport struct {
	Dropped []Dropped
}

// filterItems removes external entries, and groups left empty, from raw.
// Non-object entries are skipped silently.
func (f *Filter) filterItems(raw []any, depth int, report *FilterReport) []map[string]any {
	var kept []map[string]any

	for _, entry := range raw {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		title := stringField(item, "title")
		uri := stringField(item, "uri")

		if f.IsExternal(title, uri) {
			report.Dropped = append(report.Dropped, Dropped{Title: title, URI: uri, Depth: depth, Reason: DropExternal})
			continue
		}

		children, hasItems := item["items"]
		if stringField(item, "type") != TypeGroup || !hasItems {
			kept = append(kept, item)
			continue
		}

		childList, _ := children.([]any)
		nested := f.filterItems(childList, depth+1, report)
		if len(nested) == 0 {
			report.Dropped = append(report.Dropped, Dropped{Title: title, URI: uri, Depth: depth, Reason: DropEmptyGroup})
			continue
		}

		copied := make(map[string]any, len(item))
		for k, v := range item {
			copied[k] = v
		}
		nestedAny := make([]any, len(nested))
		for i, n := range nested {
			nestedAny[i] = n
		}
		copied["items"] = nestedAny
		kept = append(kept, copied)
	}

	return kept
}

// stringField returns item[key] when it is a string, "" otherwise.
func stringField(item map[string]any, key string) string {
	s, _ := item[key].(string)
	return s
}
