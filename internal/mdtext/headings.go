package mdtext

import (
	"regexp"
	"strings"
)

var (
	atxHeading    = regexp.MustCompile(`^ {0,3}#{1,6}(?:[ \t]+(.*?))?[ \t]*$`)
	atxClosing    = regexp.MustCompile(`(?:^|[ \t]+)#+$`)
	setextLine    = regexp.MustCompile(`^ {0,3}(?:=+|-+)[ \t]*$`)
	fenceOpen     = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")
	notParagraph  = regexp.MustCompile(`^(?: {4}|\t| {0,3}(?:[>#*+-]|\d+[.)]|$))`)
	thematicBreak = regexp.MustCompile(`^ {0,3}(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`)
)

// Headings returns the text of the headings in md, in document order.
// ATX and setext headings are found, a setext heading taking the last line
// of its paragraph as text. Fenced code is skipped. Headings nested in lists
// or block quotes are not reported.
func Headings(md string) []string {
	var (
		titles []string
		fence  string
		prev   string // previous line when it can be a paragraph line
	)

	for line := range strings.SplitSeq(md, "\n") {
		if fence != "" {
			if closesFence(line, fence) {
				fence = ""
			}
			continue
		}
		if m := fenceOpen.FindStringSubmatch(line); m != nil {
			fence = m[1]
			prev = ""
			continue
		}
		if m := atxHeading.FindStringSubmatch(line); m != nil {
			titles = append(titles, strings.TrimSpace(atxClosing.ReplaceAllString(m[1], "")))
			prev = ""
			continue
		}
		if prev != "" && setextLine.MatchString(line) {
			titles = append(titles, strings.TrimSpace(prev))
			prev = ""
			continue
		}
		if notParagraph.MatchString(line) || thematicBreak.MatchString(line) {
			prev = ""
			continue
		}
		prev = line
	}
	return titles
}

// closesFence reports whether line closes a fence opened with open.
func closesFence(line, open string) bool {
	s := strings.TrimLeft(line, " ")
	if len(line)-len(s) > 3 {
		return false
	}
	run := len(s) - len(strings.TrimLeft(s, open[:1]))
	return run >= len(open) && strings.TrimSpace(s[run:]) == ""
}
