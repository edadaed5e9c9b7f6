package pipeline

import (
	"context"
	"strings"

	"github.com/alnah/go-docmerge/internal/mdtext"
)

const byteOrderMark = "\uFEFF"

// MarkdownPreprocessor prepares Markdown before HTML conversion.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor normalizes input for CommonMark parsing.
type CommonMarkPreprocessor struct{}

// Compile-time interface check.
var _ MarkdownPreprocessor = (*CommonMarkPreprocessor)(nil)

// PreprocessMarkdown strips a leading byte order mark and converts \r\n and
// \r to \n. A cancelled context returns content unchanged.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	content = strings.TrimPrefix(content, byteOrderMark)
	return mdtext.NormalizeLineEndings(content)
}
