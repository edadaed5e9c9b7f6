package docmerge

import (
	"log/slog"
	"time"
)

// Option configures a Merger.
type Option func(*Merger)

// WithTOC enables the table of contents after the document preamble.
func WithTOC(enabled bool) Option {
	return func(m *Merger) {
		m.cfg.toc = enabled
	}
}

// WithTOCDepth limits TOC entries to nodes at depth <= n (n >= 1, default 3).
// Entries deeper than six levels are listed even though their headings are
// capped at level six.
func WithTOCDepth(n int) Option {
	return func(m *Merger) {
		m.cfg.tocDepth = n
	}
}

// WithTOCTitle sets the TOC heading text.
func WithTOCTitle(title string) Option {
	return func(m *Merger) {
		m.cfg.tocTitle = title
	}
}

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(m *Merger) {
		m.cfg.title = title
	}
}

// WithProvenance sets the italic notice under the title. An empty string
// removes the notice.
func WithProvenance(text string) Option {
	return func(m *Merger) {
		m.cfg.provenance = &text
	}
}

// WithDate appends " on <date>" to the provenance notice. The value may be
// "auto", "auto:FORMAT" or a literal date.
func WithDate(value string) Option {
	return func(m *Merger) {
		m.cfg.date = value
	}
}

// WithLogger sets the logger for merge diagnostics. Default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Merger) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithIncludeGlob sets the doublestar pattern selecting content files.
func WithIncludeGlob(pattern string) Option {
	return func(m *Merger) {
		m.cfg.include = pattern
	}
}

// WithExcludes adds doublestar patterns of paths to leave out of the index.
func WithExcludes(patterns ...string) Option {
	return func(m *Merger) {
		m.cfg.excludes = append(m.cfg.excludes, patterns...)
	}
}

// WithExternalPatterns adds case-insensitive regular expressions marking
// navigation entries as external links to drop.
func WithExternalPatterns(patterns ...string) Option {
	return func(m *Merger) {
		m.cfg.externalPatterns = append(m.cfg.externalPatterns, patterns...)
	}
}

// WithOrphanHeaders replaces the list of stray headings removed from pages.
func WithOrphanHeaders(headers ...string) Option {
	return func(m *Merger) {
		m.cfg.orphanHeaders = headers
	}
}

// WithPlaceholder replaces the placeholder paragraph removed from pages.
func WithPlaceholder(text string) Option {
	return func(m *Merger) {
		m.cfg.placeholder = text
	}
}

// WithClock sets the time source used to resolve "auto" dates.
func WithClock(now func() time.Time) Option {
	return func(m *Merger) {
		if now != nil {
			m.now = now
		}
	}
}

// ExportOption configures an Exporter.
type ExportOption func(*Exporter)

// WithTimeout sets the page load and PDF render timeout (default 30s).
func WithTimeout(d time.Duration) ExportOption {
	return func(e *Exporter) {
		e.cfg.timeout = d
	}
}

// WithStyle selects the stylesheet: a built-in name, a CSS file path or
// inline CSS.
func WithStyle(style string) ExportOption {
	return func(e *Exporter) {
		e.cfg.style = style
	}
}

// WithAssetPath sets a directory of custom styles/ and templates/ that
// override the built-in assets.
func WithAssetPath(dir string) ExportOption {
	return func(e *Exporter) {
		e.cfg.assetPath = dir
	}
}

// WithPageSize sets the PDF paper size: "letter", "a4" or "legal".
func WithPageSize(size string) ExportOption {
	return func(e *Exporter) {
		e.cfg.pageSize = size
	}
}

// WithExportLogger sets the logger for export diagnostics. Default discards.
func WithExportLogger(logger *slog.Logger) ExportOption {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}
