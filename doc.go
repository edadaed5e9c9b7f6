// Package docmerge consolidates a documentation tree into one Markdown file
// and optionally renders it to PDF.
//
// # Merging
//
// A Merger resolves every entry of a navigation descriptor (JSON or YAML) to
// a Markdown file under a content root, removes site boilerplate from each
// page and emits the pages in navigation order:
//
//	m := docmerge.NewMerger(
//	    docmerge.WithTOC(true),
//	    docmerge.WithTOCDepth(2),
//	)
//	result, err := m.Merge(ctx, docmerge.Input{
//	    ContentRoot: "docs",
//	    Descriptor:  "toc.json",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("API_documentation_full.md", []byte(result.Markdown), 0o644)
//
// Degraded conditions (unmatched entries, empty pages, unreadable files) do
// not fail a merge. They are listed in Result.Report.
//
// # Exporting
//
// An Exporter renders merged Markdown to PDF with headless Chrome (go-rod).
// When rendering fails the intermediate HTML is kept as a fallback:
//
//	exp, err := docmerge.NewExporter(docmerge.WithTimeout(time.Minute))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer exp.Close()
//
//	res, err := exp.Export(ctx, docmerge.ExportInput{
//	    Markdown:   result.Markdown,
//	    OutputPath: "API_documentation_full.pdf",
//	    SourceDir:  "docs",
//	})
//
// Set ROD_BROWSER_BIN to use an installed Chrome instead of the one go-rod
// downloads on first use. Set ROD_NO_SANDBOX=1 in containers.
//
// # Errors
//
// Fatal conditions are sentinel errors checked with errors.Is:
// ErrContentRoot, ErrDescriptor, ErrNoMatches, ErrNoContent,
// ErrInvalidTOCDepth and ErrInvalidPattern for merging; ErrBrowserConnect,
// ErrPDFGeneration and related errors for exporting.
package docmerge
