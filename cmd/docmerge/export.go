package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	docmerge "github.com/alnah/go-docmerge"
	"github.com/alnah/go-docmerge/internal/config"
	"github.com/alnah/go-docmerge/internal/fileutil"
	"github.com/alnah/go-docmerge/internal/hints"
)

// Export errors.
var (
	ErrReadMarkdown = errors.New("failed to read markdown")
	ErrPDFFallback  = errors.New("PDF export failed, HTML kept")
)

func runExport(ctx context.Context, args []string, env *Environment) error {
	c, err := parseExportFlags(args, env)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := loadSettings(env, c.common.config, func(cfg *config.Config) {
		applyExportFlags(c.fs, &c.export, cfg)
	})
	if err != nil {
		return err
	}

	input := c.input
	if input == "" {
		input = cfg.Output.Path
	}
	logger := newLogger(env.Stderr, c.common)
	return exportFile(ctx, cfg, input, pdfPathFor(input, c.export.output), env, logger, c.common.quiet)
}

// pdfPathFor returns explicit, or input with a .pdf extension.
func pdfPathFor(input, explicit string) string {
	if explicit != "" {
		return explicit
	}
	p := fileutil.ReplaceExt(input, ".pdf")
	if p == input {
		p += ".pdf"
	}
	return p
}

// exporterOptions translates cfg into Exporter options.
func exporterOptions(cfg *config.Config, logger *slog.Logger) []docmerge.ExportOption {
	opts := []docmerge.ExportOption{
		docmerge.WithTimeout(cfg.ExportTimeout()),
		docmerge.WithStyle(cfg.Export.Style),
		docmerge.WithAssetPath(cfg.Export.AssetPath),
		docmerge.WithExportLogger(logger),
	}
	if cfg.Export.PageSize != "" {
		opts = append(opts, docmerge.WithPageSize(cfg.Export.PageSize))
	}
	return opts
}

// exportFile renders the Markdown at input to pdfOut. A fallback to HTML is
// reported on stdout and returned as ErrPDFFallback.
func exportFile(ctx context.Context, cfg *config.Config, input, pdfOut string, env *Environment, logger *slog.Logger, quiet bool) error {
	content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	exporter, err := env.NewExporter(exporterOptions(cfg, logger)...)
	if err != nil {
		if errors.Is(err, docmerge.ErrStyleNotFound) {
			return withHint(err, hints.ForStyleNotFound(docmerge.StyleNames()))
		}
		return err
	}
	defer func() { _ = exporter.Close() }()

	res, err := exporter.Export(ctx, docmerge.ExportInput{
		Markdown:   string(content),
		OutputPath: pdfOut,
		SourceDir:  filepath.Dir(input),
		Title:      cfg.Document.Title,
	})
	if err != nil {
		if errors.Is(err, docmerge.ErrHTMLWrite) {
			return withHint(err, hints.ForOutputDirectory())
		}
		return err
	}

	if res.Fallback {
		if !quiet {
			fmt.Fprintf(env.Stdout, "Created %s (PDF export failed; open it in a browser to print)\n", res.HTMLPath)
		}
		return withHint(fmt.Errorf("%w: %w", ErrPDFFallback, res.Err), exportHint(res.Err))
	}

	if !quiet {
		fmt.Fprintf(env.Stdout, "Created %s (%d pages)\n", res.PDFPath, res.Pages)
	}
	return nil
}

func exportHint(err error) string {
	switch {
	case errors.Is(err, docmerge.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, docmerge.ErrPageLoad):
		return hints.ForTimeout()
	}
	return ""
}
