package docmerge

import "errors"

// Sentinel errors for library operations.
var (
	ErrContentRoot     = errors.New("content root unavailable")
	ErrDescriptor      = errors.New("navigation descriptor unavailable")
	ErrInvalidPattern  = errors.New("invalid pattern")
	ErrInvalidTOCDepth = errors.New("invalid TOC depth")
	ErrNoMatches       = errors.New("no navigation entry matched a content file")
	ErrNoContent       = errors.New("merge produced no content")
	ErrInvalidDate     = errors.New("invalid document date")

	// Export errors.
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrEmptyOutput    = errors.New("output path cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrHTMLWrite      = errors.New("failed to write HTML file")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrPDFVerify      = errors.New("PDF verification failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Export option errors.
	ErrInvalidPageSize  = errors.New("invalid page size")
	ErrInvalidTimeout   = errors.New("invalid timeout")
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
