package docmerge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alnah/go-docmerge/internal/dateutil"
	"github.com/alnah/go-docmerge/internal/groom"
	"github.com/alnah/go-docmerge/internal/index"
	"github.com/alnah/go-docmerge/internal/match"
	"github.com/alnah/go-docmerge/internal/merge"
	"github.com/alnah/go-docmerge/internal/toc"
)

// Defaults re-exported for callers and the CLI.
const (
	DefaultTitle      = merge.DefaultTitle
	DefaultProvenance = merge.DefaultProvenance
	DefaultTOCDepth   = merge.DefaultTOCDepth
	DefaultTOCTitle   = merge.DefaultTOCTitle
)

type mergerConfig struct {
	title      string
	provenance *string // nil = default notice
	date       string

	toc      bool
	tocDepth int
	tocTitle string

	include          string
	excludes         []string
	externalPatterns []string
	orphanHeaders    []string
	placeholder      string
}

// Merger consolidates a documentation tree into one Markdown document.
// A Merger holds no state between calls and is safe for concurrent use.
type Merger struct {
	cfg    mergerConfig
	logger *slog.Logger
	now    func() time.Time
	reader merge.ContentReader
}

// Input locates the content to merge.
type Input struct {
	ContentRoot string // directory scanned for Markdown files
	Descriptor  string // navigation descriptor, .json or .yaml/.yml
}

// Result is the merged document and what went into it.
type Result struct {
	Markdown string
	Report   *Report
}

// Report details each stage of a merge. Fields of stages that did not run
// are nil.
type Report struct {
	Files   int // content files indexed
	Keys    int // distinct lookup keys
	Entries int // navigation nodes kept after filtering

	Filter *toc.FilterReport
	Match  *match.Result
	Merge  *merge.Report
}

// NewMerger creates a Merger. Options are validated when Merge runs.
func NewMerger(opts ...Option) *Merger {
	m := &Merger{
		cfg:    mergerConfig{tocDepth: DefaultTOCDepth},
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Merge indexes in.ContentRoot, parses in.Descriptor, resolves navigation
// entries to files and emits the consolidated document. The context is
// checked between stages.
//
// ErrNoMatches and ErrNoContent are returned together with a Result whose
// Report explains what was tried. Other errors return a nil Result.
func (m *Merger) Merge(ctx context.Context, in Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := m.validate(); err != nil {
		return nil, err
	}
	provenance, err := m.provenance()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	idx, err := index.Build(in.ContentRoot, index.Options{
		Include:  m.cfg.include,
		Excludes: m.cfg.excludes,
		Logger:   m.logger,
	})
	if err != nil {
		if errors.Is(err, index.ErrInvalidPattern) || errors.Is(err, index.ErrInvalidExcludes) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrContentRoot, err)
	}
	report := &Report{Files: idx.Len(), Keys: idx.KeyCount()}

	filter, err := toc.NewFilter(m.cfg.externalPatterns...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tree, filtered, err := toc.LoadFile(in.Descriptor, toc.Options{Filter: filter, Logger: m.logger})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDescriptor, err)
	}
	report.Filter = filtered
	report.Entries = tree.Count()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matched, err := match.Match(tree, idx, m.logger)
	report.Match = matched
	if err != nil {
		return &Result{Report: report}, fmt.Errorf("%w: %d entries tried against %d files", ErrNoMatches, matched.Total, idx.Len())
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := merge.Merge(tree, matched.Resolutions, merge.Options{
		Title:        m.cfg.title,
		Provenance:   provenance,
		NoProvenance: m.cfg.provenance != nil && *m.cfg.provenance == "",
		TOC:          m.cfg.toc,
		TOCDepth:     m.cfg.tocDepth,
		TOCTitle:     m.cfg.tocTitle,
		Groomer: groom.New(groom.Options{
			OrphanHeaders: m.cfg.orphanHeaders,
			Placeholder:   m.cfg.placeholder,
		}),
		Reader: m.reader,
		Logger: m.logger,
	})
	report.Merge = doc.Report
	if err != nil {
		return &Result{Report: report}, fmt.Errorf("%w: %d of %d matched entries had content", ErrNoContent, len(doc.Report.Sections), matched.Matched)
	}

	return &Result{Markdown: doc.Markdown, Report: report}, nil
}

func (m *Merger) validate() error {
	if m.cfg.tocDepth < 1 {
		return fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidTOCDepth, m.cfg.tocDepth)
	}
	return nil
}

// provenance returns the notice passed to the emitter, "" for the default.
func (m *Merger) provenance() (string, error) {
	text := ""
	if m.cfg.provenance != nil {
		if *m.cfg.provenance == "" {
			return "", nil
		}
		text = *m.cfg.provenance
	}
	if m.cfg.date == "" {
		return text, nil
	}

	date, err := dateutil.ResolveDate(m.cfg.date, m.now())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if text == "" {
		text = DefaultProvenance
	}
	return text + " on " + date, nil
}
