// Package groom cleans raw Markdown page content before it is merged.
//
// Grooming is a pure text transformation made of three passes applied in
// order: leading metadata block removal, orphan section removal and
// whitespace normalization. Each round strips at most one metadata block.
// Rounds repeat until the text no longer changes, so stacked blocks, or a
// block exposed by orphan removal, are stripped too and
// Groom(Groom(x)) == Groom(x) for any input.
package groom

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultOrphanHeaders are top-level headers left behind by the publishing
// platform's navigation chrome.
var DefaultOrphanHeaders = []string{
	"Navixy IoT Logic API",
	"GitHub repository",
	"User documentation",
	"Back to Navixy website",
	"Contact us",
	"Resources",
}

// DefaultPlaceholder is the stub sentence of pages never written.
const DefaultPlaceholder = "The beginning of an awesome article..."

// Precompiled regex patterns for performance.
var (
	// Metadata block variants, anchored at the start of the text:
	// id only, id then tags, tags then id.
	metadataBlocks = []*regexp.Regexp{
		regexp.MustCompile(`\A---\s*\nstoplight-id:\s*[a-zA-Z0-9]+\s*\n---\s*\n?`),
		regexp.MustCompile(`\A---\s*\nstoplight-id:\s*[a-zA-Z0-9]+\s*\ntags:\s*\[[^\]]*\]\s*\n---\s*\n?`),
		regexp.MustCompile(`\A---\s*\ntags:\s*\[[^\]]*\]\s*\nstoplight-id:\s*[a-zA-Z0-9]+\s*\n---\s*\n?`),
	}

	trailingSpace      = regexp.MustCompile(`(?m)[ \t]+$`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// Options configures a Groomer. Zero values select the defaults.
type Options struct {
	OrphanHeaders []string // header titles without the leading "# "
	Placeholder   string
}

// Stats counts characters removed by each pass, summed over all rounds.
type Stats struct {
	Metadata   int
	Orphans    int
	Whitespace int
	Rounds     int
}

// Removed returns the total number of characters removed. It can be
// negative by one when a final newline had to be added.
func (s Stats) Removed() int {
	return s.Metadata + s.Orphans + s.Whitespace
}

// Groomer applies the grooming passes. It is safe for concurrent use.
type Groomer struct {
	orphans     []*regexp.Regexp
	placeholder *regexp.Regexp
}

// New compiles a Groomer from opts.
func New(opts Options) *Groomer {
	headers := opts.OrphanHeaders
	if len(headers) == 0 {
		headers = DefaultOrphanHeaders
	}
	placeholder := opts.Placeholder
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}

	g := &Groomer{orphans: make([]*regexp.Regexp, 0, len(headers))}
	for _, h := range headers {
		g.orphans = append(g.orphans,
			regexp.MustCompile(`(?m)^# `+regexp.QuoteMeta(h)+`[ \t]*(?:\n|$)`))
	}
	g.placeholder = regexp.MustCompile(
		`(?m)^# [^\n]*\n\n` + regexp.QuoteMeta(placeholder) + `[ \t]*(?:\n|$)`)
	return g
}

var defaultGroomer = New(Options{})

// Groom cleans content with the default options.
func Groom(content string) string {
	return defaultGroomer.Groom(content)
}

// Groom cleans content. It never fails: absent patterns are no-ops.
func (g *Groomer) Groom(content string) string {
	out, _ := g.GroomWithStats(content)
	return out
}

// GroomWithStats cleans content and reports what each pass removed.
func (g *Groomer) GroomWithStats(content string) (string, Stats) {
	var stats Stats
	if content == "" {
		return "", stats
	}

	for {
		stats.Rounds++
		next := g.round(content, &stats)
		if next == content {
			return next, stats
		}
		content = next
	}
}

// round applies the three passes once.
func (g *Groomer) round(content string, stats *Stats) string {
	before := len(content)
	content = StripMetadata(content)
	stats.Metadata += before - len(content)

	before = len(content)
	content = g.StripOrphans(content)
	stats.Orphans += before - len(content)

	before = len(content)
	content = NormalizeWhitespace(content)
	stats.Whitespace += before - len(content)

	return content
}

// StripMetadata removes at most one stoplight metadata block from the start
// of content. Variants are tried in order and the first match wins.
func StripMetadata(content string) string {
	for _, re := range metadataBlocks {
		if loc := re.FindStringIndex(content); loc != nil {
			return content[loc[1]:]
		}
	}
	return content
}

// StripOrphans removes orphan headers and placeholder sections.
func (g *Groomer) StripOrphans(content string) string {
	for _, re := range g.orphans {
		content = re.ReplaceAllString(content, "")
	}
	return g.placeholder.ReplaceAllString(content, "")
}

// NormalizeWhitespace strips trailing horizontal whitespace, collapses runs
// of blank lines to one and ends the text with a single newline. Blank
// content becomes "".
func NormalizeWhitespace(content string) string {
	content = trailingSpace.ReplaceAllString(content, "")
	content = multipleBlankLines.ReplaceAllString(content, "\n\n")
	content = strings.TrimRightFunc(content, unicode.IsSpace)
	if strings.TrimSpace(content) == "" {
		return ""
	}
	return content + "\n"
}
