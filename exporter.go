package docmerge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-docmerge/internal/assets"
	"github.com/alnah/go-docmerge/internal/fileutil"
	"github.com/alnah/go-docmerge/internal/mdtext"
	"github.com/alnah/go-docmerge/internal/pipeline"
)

// DefaultTimeout bounds page load and PDF rendering.
const DefaultTimeout = 30 * time.Second

// Compile-time interface checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
)

type exporterConfig struct {
	timeout   time.Duration
	style     string
	assetPath string
	pageSize  string
}

// Exporter renders Markdown to a styled HTML page and prints it to PDF with
// headless Chrome. Create with NewExporter and Close when done. An Exporter
// drives a single browser and is not safe for concurrent use.
type Exporter struct {
	cfg    exporterConfig
	logger *slog.Logger

	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
	page          *pipeline.Page
	css           string
	paper         paperSize
	renderer      pdfRenderer
}

// ExportInput is one document to render.
type ExportInput struct {
	Markdown   string
	OutputPath string // PDF destination; the HTML goes next to it
	SourceDir  string // base for relative image and link paths, optional
	Title      string // page title; default is the first level-one heading
}

// ExportResult describes what Export produced.
type ExportResult struct {
	PDFPath  string // empty when Fallback is set
	HTMLPath string // kept only when Fallback is set
	Fallback bool   // PDF rendering failed, HTMLPath holds a printable page
	Pages    int
	Err      error // cause of the fallback
}

// NewExporter creates an Exporter. Style and template assets are resolved
// here; the browser starts on the first Export.
func NewExporter(opts ...ExportOption) (*Exporter, error) {
	e := &Exporter{
		cfg:           exporterConfig{timeout: DefaultTimeout, pageSize: PageSizeA4},
		logger:        slog.New(slog.DiscardHandler),
		preprocessor:  &pipeline.CommonMarkPreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(mdtext.Anchor),
		cssInjector:   &pipeline.CSSInjection{},
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.cfg.timeout <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeout, e.cfg.timeout)
	}
	paper, ok := lookupPaper(e.cfg.pageSize)
	if !ok {
		return nil, fmt.Errorf("%w: %q (must be letter, a4 or legal)", ErrInvalidPageSize, e.cfg.pageSize)
	}
	e.paper = paper

	loader, err := assets.NewAssetResolver(e.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	if e.css, err = resolveStyle(loader, e.cfg.style); err != nil {
		return nil, err
	}

	tmpl, err := loader.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading page template: %w", err)
	}
	if e.page, err = pipeline.NewPage(tmpl); err != nil {
		return nil, fmt.Errorf("initializing page template: %w", err)
	}

	if e.renderer == nil {
		e.renderer = newRodRenderer(e.cfg.timeout)
	}
	return e, nil
}

// resolveStyle turns a style name, CSS file path or inline CSS into CSS.
func resolveStyle(loader assets.AssetLoader, style string) (string, error) {
	switch {
	case style == "":
		style = assets.DefaultStyleName
	case fileutil.IsFilePath(style):
		content, err := os.ReadFile(style) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrStyleNotFound, style, err)
		}
		return string(content), nil
	case fileutil.IsCSS(style):
		return style, nil
	}

	css, err := loader.LoadStyle(style)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
			return "", fmt.Errorf("%w: %q", ErrStyleNotFound, style)
		}
		return "", fmt.Errorf("loading style %q: %w", style, err)
	}
	return css, nil
}

// StyleNames lists the built-in styles.
func StyleNames() []string {
	return assets.NewEmbeddedLoader().StyleNames()
}

// Export renders in.Markdown to in.OutputPath. The intermediate HTML is
// written next to the PDF and removed once the PDF is written and verified.
//
// A failed render or an unreadable PDF is not an error: the HTML is kept and
// the result has Fallback set with the cause in Err. Errors are returned for
// invalid input, HTML conversion failures, failed writes and cancellation.
func (e *Exporter) Export(ctx context.Context, in ExportInput) (result *ExportResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if strings.TrimSpace(in.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}
	if in.OutputPath == "" {
		return nil, ErrEmptyOutput
	}

	page, err := e.renderPage(ctx, in)
	if err != nil {
		return nil, err
	}

	htmlPath := htmlPathFor(in.OutputPath)
	if err := fileutil.WriteFileAtomic(htmlPath, []byte(page), 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLWrite, err)
	}
	e.logger.Debug("wrote intermediate HTML", "path", htmlPath, "bytes", len(page))

	renderCtx, cancel := context.WithTimeout(ctx, e.cfg.timeout)
	defer cancel()

	fallback := func(cause error) *ExportResult {
		e.logger.Warn("PDF export failed, keeping HTML", "html", htmlPath, "error", cause)
		return &ExportResult{HTMLPath: htmlPath, Fallback: true, Err: cause}
	}

	absHTML, err := filepath.Abs(htmlPath)
	if err != nil {
		absHTML = htmlPath
	}
	data, err := e.renderer.RenderFromFile(renderCtx, absHTML, e.paper)
	if err != nil {
		if ctx.Err() != nil {
			return fallback(err), ctx.Err()
		}
		return fallback(err), nil
	}

	pages, err := countPages(data)
	if err != nil {
		return fallback(err), nil
	}

	if err := fileutil.WriteFileAtomic(in.OutputPath, data, 0o644); err != nil {
		return fallback(err), fmt.Errorf("writing PDF: %w", err)
	}
	if err := os.Remove(htmlPath); err != nil {
		e.logger.Debug("could not remove intermediate HTML", "path", htmlPath, "error", err)
	}

	e.logger.Info("exported PDF", "path", in.OutputPath, "pages", pages, "bytes", len(data))
	return &ExportResult{PDFPath: in.OutputPath, Pages: pages}, nil
}

// RenderHTML returns the standalone HTML page for in without printing it.
func (e *Exporter) RenderHTML(ctx context.Context, in ExportInput) (string, error) {
	if strings.TrimSpace(in.Markdown) == "" {
		return "", ErrEmptyMarkdown
	}
	return e.renderPage(ctx, in)
}

func (e *Exporter) renderPage(ctx context.Context, in ExportInput) (string, error) {
	md := e.preprocessor.PreprocessMarkdown(ctx, in.Markdown)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := e.htmlConverter.ToHTML(ctx, md)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	if in.SourceDir != "" {
		if body, err = pipeline.RewriteRelativePaths(body, in.SourceDir); err != nil {
			return "", fmt.Errorf("%w: rewriting relative paths: %v", ErrHTMLConversion, err)
		}
	}

	title := in.Title
	if title == "" {
		title = firstHeading(md)
	}
	page, err := e.page.Render(ctx, title, body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return e.cssInjector.InjectCSS(ctx, page, e.css), nil
}

// Close releases the browser.
func (e *Exporter) Close() error {
	if e.renderer != nil {
		return e.renderer.Close()
	}
	return nil
}

// htmlPathFor places the HTML beside the PDF, never on top of it.
func htmlPathFor(outputPath string) string {
	p := fileutil.ReplaceExt(outputPath, ".html")
	if p == outputPath {
		p += ".html"
	}
	return p
}

// firstHeading returns the text of the first level-one ATX heading.
func firstHeading(md string) string {
	for line := range strings.SplitSeq(md, "\n") {
		if rest, ok := strings.CutPrefix(line, "# "); ok {
			if t := strings.TrimSpace(rest); t != "" {
				return t
			}
		}
	}
	return DefaultTitle
}
