package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	flag "github.com/spf13/pflag"

	docmerge "github.com/alnah/go-docmerge"
	"github.com/alnah/go-docmerge/internal/config"
	"github.com/alnah/go-docmerge/internal/fileutil"
	"github.com/alnah/go-docmerge/internal/hints"
)

// ErrWriteOutput is returned when a result file cannot be written.
var ErrWriteOutput = errors.New("failed to write output")

func runMerge(ctx context.Context, args []string, env *Environment) error {
	c, err := parseMergeFlags(args, env)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := loadSettings(env, c.common.config, func(cfg *config.Config) {
		applyMergeFlags(c.fs, &c.merge, cfg)
	})
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, c.common)
	_, err = mergeToFile(ctx, cfg, c.merge.noProvenance, env, logger, c.common.quiet)
	return err
}

// mergerOptions translates cfg into Merger options.
func mergerOptions(cfg *config.Config, noProvenance bool, env *Environment, logger *slog.Logger) []docmerge.Option {
	opts := []docmerge.Option{
		docmerge.WithLogger(logger),
		docmerge.WithClock(env.Now),
		docmerge.WithTOC(cfg.TOC.Enabled),
		docmerge.WithTOCDepth(cfg.TOCDepth()),
		docmerge.WithTitle(cfg.Document.Title),
		docmerge.WithTOCTitle(cfg.TOC.Title),
		docmerge.WithDate(cfg.Document.Date),
		docmerge.WithIncludeGlob(cfg.Input.Include),
		docmerge.WithExcludes(cfg.Input.Exclude...),
		docmerge.WithExternalPatterns(cfg.Filter.ExternalPatterns...),
		docmerge.WithOrphanHeaders(cfg.Groom.OrphanHeaders...),
		docmerge.WithPlaceholder(cfg.Groom.Placeholder),
	}
	switch {
	case noProvenance:
		opts = append(opts, docmerge.WithProvenance(""))
	case cfg.Document.Provenance != "":
		opts = append(opts, docmerge.WithProvenance(cfg.Document.Provenance))
	}
	return opts
}

// mergeToFile merges the configured portal and writes the Markdown to
// cfg.Output.Path. Returns the written path.
func mergeToFile(ctx context.Context, cfg *config.Config, noProvenance bool, env *Environment, logger *slog.Logger, quiet bool) (string, error) {
	m := docmerge.NewMerger(mergerOptions(cfg, noProvenance, env, logger)...)

	res, err := m.Merge(ctx, docmerge.Input{
		ContentRoot: cfg.Input.DocsDir,
		Descriptor:  cfg.Input.Descriptor,
	})
	if err != nil {
		return "", withHint(err, mergeHint(err, cfg))
	}

	out := cfg.Output.Path
	if err := fileutil.WriteFileAtomic(out, []byte(res.Markdown), 0o644); err != nil {
		return "", fmt.Errorf("%w: %s: %v%s", ErrWriteOutput, out, err, hints.ForOutputDirectory())
	}

	if !quiet {
		printMergeSummary(env, out, res.Report)
	}
	return out, nil
}

func mergeHint(err error, cfg *config.Config) string {
	switch {
	case errors.Is(err, docmerge.ErrContentRoot):
		return hints.ForDocsDir(cfg.Input.DocsDir)
	case errors.Is(err, docmerge.ErrDescriptor):
		return hints.ForDescriptor(cfg.Input.Descriptor)
	case errors.Is(err, docmerge.ErrNoMatches):
		return hints.ForNoMatches()
	}
	return ""
}

func printMergeSummary(env *Environment, out string, r *docmerge.Report) {
	fmt.Fprintf(env.Stdout, "Created %s\n", out)
	if r == nil || r.Match == nil || r.Merge == nil {
		return
	}
	fmt.Fprintf(env.Stdout, "  %d of %d entries matched, %d sections, %d skipped\n",
		r.Match.Matched, r.Match.Total, len(r.Merge.Sections), len(r.Merge.Skipped))
}

// withHint appends hint to err's message and keeps err in the chain.
func withHint(err error, hint string) error {
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}
