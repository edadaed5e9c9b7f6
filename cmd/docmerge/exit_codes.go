package main

import (
	"context"
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	docmerge "github.com/alnah/go-docmerge"
	"github.com/alnah/go-docmerge/internal/config"
)

// Exit codes for the docmerge CLI.
const (
	ExitSuccess   = 0 // Document written
	ExitGeneral   = 1 // Unexpected error or cancellation
	ExitUsage     = 2 // Invalid flags, config or option values
	ExitIO        = 3 // Missing input, unreadable descriptor, unwritable output
	ExitBrowser   = 4 // Chrome unavailable or PDF rendering failed
	ExitNoContent = 5 // Nothing matched or nothing was emitted
)

// exitCodeFor maps an error to its exit code. Errors must be wrapped with
// %w for errors.Is to see the sentinel.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, docmerge.ErrNoMatches),
		errors.Is(err, docmerge.ErrNoContent):
		return ExitNoContent

	case errors.Is(err, docmerge.ErrBrowserConnect),
		errors.Is(err, docmerge.ErrPageCreate),
		errors.Is(err, docmerge.ErrPageLoad),
		errors.Is(err, docmerge.ErrPDFGeneration),
		errors.Is(err, docmerge.ErrPDFVerify),
		errors.Is(err, ErrPDFFallback):
		return ExitBrowser

	case errors.Is(err, docmerge.ErrContentRoot),
		errors.Is(err, docmerge.ErrDescriptor),
		errors.Is(err, docmerge.ErrHTMLWrite),
		errors.Is(err, ErrReadMarkdown),
		errors.Is(err, ErrWriteOutput),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission):
		return ExitIO

	case errors.Is(err, ErrUsage),
		errors.Is(err, flag.ErrHelp),
		errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, config.ErrEmptyConfigName),
		errors.Is(err, config.ErrConfigParse),
		errors.Is(err, config.ErrFieldTooLong),
		errors.Is(err, config.ErrInvalidValue),
		errors.Is(err, docmerge.ErrInvalidTOCDepth),
		errors.Is(err, docmerge.ErrInvalidPattern),
		errors.Is(err, docmerge.ErrInvalidDate),
		errors.Is(err, docmerge.ErrInvalidPageSize),
		errors.Is(err, docmerge.ErrInvalidTimeout),
		errors.Is(err, docmerge.ErrStyleNotFound),
		errors.Is(err, docmerge.ErrInvalidAssetPath),
		errors.Is(err, docmerge.ErrEmptyMarkdown),
		errors.Is(err, docmerge.ErrEmptyOutput):
		return ExitUsage

	case errors.Is(err, context.Canceled):
		return ExitGeneral
	}

	return ExitGeneral
}
