// Package mdtext holds the Markdown text rules shared by merging and
// export: line endings, heading anchors and heading discovery. Both sides
// must agree on them for table of contents links to resolve in the
// rendered page.
package mdtext

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	anchorInvalid = regexp.MustCompile(`[^a-z0-9\-]`)
	anchorHyphens = regexp.MustCompile(`-+`)
)

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// Anchor derives the link fragment for a heading title: lowercase, spaces
// to hyphens, characters outside [a-z0-9-] dropped, hyphen runs collapsed,
// edge hyphens trimmed.
func Anchor(title string) string {
	a := strings.ReplaceAll(strings.ToLower(title), " ", "-")
	a = anchorInvalid.ReplaceAllString(a, "")
	a = anchorHyphens.ReplaceAllString(a, "-")
	return strings.Trim(a, "-")
}

// FallbackID replaces an empty heading anchor.
const FallbackID = "heading"

// IDSet hands out document-unique IDs. A repeated base gets a numeric
// suffix: "setup", "setup-1", "setup-2". The zero value is not usable;
// create one with NewIDSet.
type IDSet struct {
	used map[string]struct{}
}

// NewIDSet returns an empty IDSet.
func NewIDSet() *IDSet {
	return &IDSet{used: make(map[string]struct{})}
}

// Unique returns base, or base with the first free suffix, and marks the
// result as used.
func (s *IDSet) Unique(base string) string {
	id := base
	for i := 1; ; i++ {
		if _, taken := s.used[id]; !taken {
			break
		}
		id = base + "-" + strconv.Itoa(i)
	}
	s.used[id] = struct{}{}
	return id
}

// Reserve marks id as used.
func (s *IDSet) Reserve(id string) {
	s.used[id] = struct{}{}
}

// HeadingID returns the unique ID of a heading titled title.
func (s *IDSet) HeadingID(title string) string {
	base := Anchor(title)
	if base == "" {
		base = FallbackID
	}
	return s.Unique(base)
}
