// Package merge emits the consolidated document from a navigation tree and
// its file resolutions.
//
// Emission is a single depth-first pass in navigation order. The body and
// the optional table of contents are buffered separately and joined once
// behind the document preamble.
package merge

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-docmerge/internal/groom"
	"github.com/alnah/go-docmerge/internal/match"
	"github.com/alnah/go-docmerge/internal/mdtext"
	"github.com/alnah/go-docmerge/internal/toc"
)

// ErrNoContent indicates the tree produced no output at all.
var ErrNoContent = errors.New("merge produced no content")

// Document preamble defaults.
const (
	DefaultTitle      = "Navixy IoT Logic API Documentation"
	DefaultProvenance = "Generated from https://developers.navixy.com/docs/iot-logic-api/overview"
	DefaultTOCDepth   = 3

	// MaxHeadingLevel caps heading markup for deeply nested nodes.
	MaxHeadingLevel = 6
)

var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// ContentReader supplies the bytes of a resolved file.
type ContentReader interface {
	ReadContent(path string) ([]byte, error)
}

// OSReader reads files from the local filesystem.
type OSReader struct{}

// Compile-time interface check.
var _ ContentReader = OSReader{}

// ReadContent implements ContentReader.
func (OSReader) ReadContent(path string) ([]byte, error) {
	return os.ReadFile(path) // #nosec G304 -- path comes from the file index
}

// Options configures emission. Zero values select the defaults.
type Options struct {
	Title        string
	Provenance   string
	NoProvenance bool // omit the provenance line

	TOC      bool
	TOCDepth int
	TOCTitle string

	Groomer *groom.Groomer
	Reader  ContentReader
	Logger  *slog.Logger
}

// SkipReason explains why a leaf produced no output.
type SkipReason string

const (
	SkipUnmatched SkipReason = "unmatched"
	SkipEmpty     SkipReason = "empty"
	SkipReadError SkipReason = "read-error"
	SkipUntitled  SkipReason = "untitled"
)

// Section records one emitted leaf.
type Section struct {
	Path  toc.Path
	Title string
	Depth int
	File  string // relative path
	Bytes int    // groomed content length
}

// Skipped records one leaf that produced no output.
type Skipped struct {
	Path   toc.Path
	Title  string
	File   string
	Reason SkipReason
	Err    error
}

// Report summarizes an emission pass.
type Report struct {
	Sections []Section
	Groups   int
	Dividers int
	Skipped  []Skipped
	TOC      []TOCEntry
	Removed  int // characters removed by grooming
}

// Document is the merged output.
type Document struct {
	Markdown string
	Report   *Report
}

// Merge emits tree in navigation order using resolutions for leaf content.
// ErrNoContent is returned, with the report, when nothing was emitted.
//
// TOC links use the heading IDs of the merged document, numbered in
// document order the way the exporter numbers them, so a repeated title
// links to its own section.
func Merge(tree *toc.Tree, resolutions match.Resolutions, opts Options) (*Document, error) {
	e := newEmitter(resolutions, opts)

	depth := opts.TOCDepth
	if depth <= 0 {
		depth = DefaultTOCDepth
	}
	var tocHeading string
	if opts.TOC && len(CollectTOC(tree, depth)) > 0 {
		tocHeading = opts.TOCTitle
		if tocHeading == "" {
			tocHeading = DefaultTOCTitle
		}
	}

	e.ids.HeadingID(e.title())
	if tocHeading != "" {
		e.ids.HeadingID(tocHeading)
	}
	e.emit(tree.Roots)

	if e.emitted == 0 {
		return &Document{Report: e.report}, ErrNoContent
	}

	var doc strings.Builder
	doc.WriteString(Preamble(e.title(), e.provenance()))
	if tocHeading != "" {
		e.report.TOC = collectTOC(tree, depth, e.anchors)
		doc.WriteString(RenderTOC(tocHeading, e.report.TOC))
	}
	doc.WriteString(e.body.String())

	e.logger.Info("merged document",
		"sections", len(e.report.Sections),
		"groups", e.report.Groups,
		"skipped", len(e.report.Skipped),
		"toc_entries", len(e.report.TOC),
		"bytes", doc.Len(),
	)

	return &Document{Markdown: doc.String(), Report: e.report}, nil
}

// Preamble returns the opening title line and provenance notice.
func Preamble(title, provenance string) string {
	if title == "" {
		title = DefaultTitle
	}
	s := "# " + title + "\n\n"
	if provenance != "" {
		s += "*" + provenance + "*\n\n"
	}
	return s
}

// Heading returns the section header emitted for a node at depth.
func Heading(depth int, title string) string {
	level := min(max(depth, 1), MaxHeadingLevel)
	return "\n" + strings.Repeat("#", level) + " " + title + "\n\n"
}

type emitter struct {
	opts        Options
	resolutions match.Resolutions
	groomer     *groom.Groomer
	reader      ContentReader
	logger      *slog.Logger

	body    strings.Builder
	emitted int
	report  *Report

	ids     *mdtext.IDSet
	anchors map[toc.Path]string // heading ID of each emitted node
}

func newEmitter(resolutions match.Resolutions, opts Options) *emitter {
	e := &emitter{
		opts:        opts,
		resolutions: resolutions,
		groomer:     opts.Groomer,
		reader:      opts.Reader,
		logger:      opts.Logger,
		report:      &Report{},
		ids:         mdtext.NewIDSet(),
		anchors:     make(map[toc.Path]string),
	}
	if e.groomer == nil {
		e.groomer = groom.New(groom.Options{})
	}
	if e.reader == nil {
		e.reader = OSReader{}
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

func (e *emitter) title() string {
	if e.opts.Title == "" {
		return DefaultTitle
	}
	return e.opts.Title
}

// heading writes the header of n and records its ID.
func (e *emitter) heading(n *toc.Node) {
	e.body.WriteString(Heading(n.Depth, n.Title))
	e.anchors[n.Path] = e.ids.HeadingID(n.Title)
}

func (e *emitter) provenance() string {
	if e.opts.NoProvenance {
		return ""
	}
	if e.opts.Provenance == "" {
		return DefaultProvenance
	}
	return e.opts.Provenance
}

func (e *emitter) emit(nodes []*toc.Node) {
	for _, n := range nodes {
		switch n.Kind {
		case toc.KindGroup:
			if n.Title != "" {
				e.heading(n)
				e.emitted++
				e.report.Groups++
				e.logger.Debug("section", "title", n.Title, "depth", n.Depth)
			}
			e.emit(n.Children)
		case toc.KindLeaf:
			e.emitLeaf(n)
		case toc.KindDivider:
			e.body.WriteString("\n---\n\n")
			e.emitted++
			e.report.Dividers++
		}
	}
}

func (e *emitter) emitLeaf(n *toc.Node) {
	rec, ok := e.resolutions[n.Path]
	if !ok || rec == nil {
		e.skip(n, "", SkipUnmatched, nil)
		return
	}

	content, err := e.read(rec.Path)
	if err != nil {
		e.skip(n, rec.RelativePath, SkipReadError, err)
		return
	}

	groomed, stats := e.groomer.GroomWithStats(content)
	e.report.Removed += stats.Removed()
	if strings.TrimSpace(groomed) == "" {
		e.skip(n, rec.RelativePath, SkipEmpty, nil)
		return
	}
	if n.Title == "" {
		e.skip(n, rec.RelativePath, SkipUntitled, nil)
		return
	}

	e.heading(n)
	for _, h := range mdtext.Headings(groomed) {
		e.ids.HeadingID(h)
	}
	e.body.WriteString(groomed)
	e.body.WriteString("\n\n")
	e.emitted++
	e.report.Sections = append(e.report.Sections, Section{
		Path:  n.Path,
		Title: n.Title,
		Depth: n.Depth,
		File:  rec.RelativePath,
		Bytes: len(groomed),
	})
	e.logger.Debug("content", "title", n.Title, "file", rec.RelativePath, "removed", stats.Removed())
}

func (e *emitter) read(path string) (string, error) {
	data, err := e.reader.ReadContent(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, errInvalidUTF8)
	}
	return mdtext.NormalizeLineEndings(string(data)), nil
}

func (e *emitter) skip(n *toc.Node, file string, reason SkipReason, err error) {
	e.report.Skipped = append(e.report.Skipped, Skipped{
		Path:   n.Path,
		Title:  n.Title,
		File:   file,
		Reason: reason,
		Err:    err,
	})
	if err != nil {
		e.logger.Warn("skipped navigation entry", "title", n.Title, "reason", string(reason), "error", err)
		return
	}
	e.logger.Warn("skipped navigation entry", "title", n.Title, "reason", string(reason))
}
