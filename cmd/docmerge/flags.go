package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// mergeFlags holds flags for the merge step.
type mergeFlags struct {
	docs         string
	descriptor   string
	output       string
	title        string
	provenance   string
	noProvenance bool
	date         string
	toc          bool
	tocDepth     int
	tocTitle     string
	excludes     []string
}

// exportFlags holds flags for the export step.
type exportFlags struct {
	output    string
	timeout   string
	style     string
	assetPath string
	pageSize  string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-entry diagnostics")
}

// addMergeFlags adds merge flags to a FlagSet. The output flag is
// registered separately because build uses -o for the merged Markdown.
func addMergeFlags(fs *flag.FlagSet, f *mergeFlags) {
	fs.StringVar(&f.docs, "docs", "", "content root directory (default \"docs\")")
	fs.StringVar(&f.descriptor, "descriptor", "", "navigation descriptor, JSON or YAML (default \"toc.json\")")
	fs.StringVar(&f.title, "title", "", "document title")
	fs.StringVar(&f.provenance, "provenance", "", "notice printed under the title")
	fs.BoolVar(&f.noProvenance, "no-provenance", false, "omit the provenance notice")
	fs.StringVar(&f.date, "date", "", "append a date to the notice (\"auto\", \"auto:FORMAT\" or literal)")
	fs.BoolVar(&f.toc, "toc", false, "generate a table of contents")
	fs.IntVar(&f.tocDepth, "toc-depth", 0, "max TOC depth (>= 1, default 3)")
	fs.StringVar(&f.tocTitle, "toc-title", "", "table of contents heading")
	fs.StringArrayVar(&f.excludes, "exclude", nil, "glob of content files to skip (repeatable)")
}

// addExportFlags adds export flags except the output path.
func addExportFlags(fs *flag.FlagSet, f *exportFlags) {
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.style, "style", "", "CSS style name, file path or inline CSS")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "page size: letter, a4, legal")
}

// newFlagSet returns a FlagSet that reports errors to the caller instead of
// exiting. pflag's own messages are discarded; runMain prints the error.
func newFlagSet(name string, stderr io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseFlags runs fs.Parse and wraps failures with ErrUsage. flag.ErrHelp
// is returned as is.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

type mergeCommand struct {
	fs     *flag.FlagSet
	common commonFlags
	merge  mergeFlags
}

func parseMergeFlags(args []string, env *Environment) (*mergeCommand, error) {
	c := &mergeCommand{fs: newFlagSet("merge", env.Stderr, printMergeUsage)}
	c.fs.StringVarP(&c.merge.output, "output", "o", "", "merged Markdown file (default \"API_documentation_full.md\")")
	addMergeFlags(c.fs, &c.merge)
	addCommonFlags(c.fs, &c.common)

	if err := parseFlags(c.fs, args); err != nil {
		return nil, err
	}
	if c.fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, c.fs.Arg(0))
	}
	if err := checkMergeFlags(c.fs, &c.merge); err != nil {
		return nil, err
	}
	return c, nil
}

type exportCommand struct {
	fs     *flag.FlagSet
	common commonFlags
	export exportFlags
	input  string
}

func parseExportFlags(args []string, env *Environment) (*exportCommand, error) {
	c := &exportCommand{fs: newFlagSet("export", env.Stderr, printExportUsage)}
	c.fs.StringVarP(&c.export.output, "output", "o", "", "PDF file (default: input with .pdf extension)")
	addExportFlags(c.fs, &c.export)
	addCommonFlags(c.fs, &c.common)

	if err := parseFlags(c.fs, args); err != nil {
		return nil, err
	}
	switch c.fs.NArg() {
	case 0:
	case 1:
		c.input = c.fs.Arg(0)
	default:
		return nil, fmt.Errorf("%w: export takes one input file, got %d", ErrUsage, c.fs.NArg())
	}
	return c, nil
}

type buildCommand struct {
	fs     *flag.FlagSet
	common commonFlags
	merge  mergeFlags
	export exportFlags
}

func parseBuildFlags(args []string, env *Environment) (*buildCommand, error) {
	c := &buildCommand{fs: newFlagSet("build", env.Stderr, printBuildUsage)}
	c.fs.StringVarP(&c.merge.output, "output", "o", "", "merged Markdown file (default \"API_documentation_full.md\")")
	c.fs.StringVar(&c.export.output, "pdf", "", "PDF file (default: Markdown output with .pdf extension)")
	addMergeFlags(c.fs, &c.merge)
	addExportFlags(c.fs, &c.export)
	addCommonFlags(c.fs, &c.common)

	if err := parseFlags(c.fs, args); err != nil {
		return nil, err
	}
	if c.fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, c.fs.Arg(0))
	}
	if err := checkMergeFlags(c.fs, &c.merge); err != nil {
		return nil, err
	}
	return c, nil
}

// checkMergeFlags rejects values the config layer would treat as unset.
func checkMergeFlags(fs *flag.FlagSet, f *mergeFlags) error {
	if fs.Changed("toc-depth") && f.tocDepth < 1 {
		return fmt.Errorf("%w: --toc-depth must be at least 1, got %d", ErrUsage, f.tocDepth)
	}
	if f.noProvenance && fs.Changed("provenance") {
		return fmt.Errorf("%w: --provenance and --no-provenance are mutually exclusive", ErrUsage)
	}
	return nil
}
