package main

// Notes:
// - exitCodeFor is checked against every sentinel the CLI can surface, bare
//   and wrapped, so the errors.Is chain is exercised.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	docmerge "github.com/alnah/go-docmerge"
	"github.com/alnah/go-docmerge/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// No content (exit 5)
		{"no matches", docmerge.ErrNoMatches, ExitNoContent},
		{"no content", docmerge.ErrNoContent, ExitNoContent},
		{"wrapped no matches", withHint(docmerge.ErrNoMatches, "\n  hint: x"), ExitNoContent},

		// Browser (exit 4)
		{"browser connect", docmerge.ErrBrowserConnect, ExitBrowser},
		{"page create", docmerge.ErrPageCreate, ExitBrowser},
		{"page load", docmerge.ErrPageLoad, ExitBrowser},
		{"pdf generation", docmerge.ErrPDFGeneration, ExitBrowser},
		{"pdf verify", docmerge.ErrPDFVerify, ExitBrowser},
		{"fallback", fmt.Errorf("%w: %w", ErrPDFFallback, errors.New("boom")), ExitBrowser},

		// I/O (exit 3)
		{"content root", docmerge.ErrContentRoot, ExitIO},
		{"descriptor", fmt.Errorf("%w: open toc.json", docmerge.ErrDescriptor), ExitIO},
		{"html write", docmerge.ErrHTMLWrite, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"file not exist", fmt.Errorf("writing PDF: %w", os.ErrNotExist), ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},

		// Usage and config (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config value", config.ErrInvalidValue, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"toc depth", docmerge.ErrInvalidTOCDepth, ExitUsage},
		{"pattern", docmerge.ErrInvalidPattern, ExitUsage},
		{"date", docmerge.ErrInvalidDate, ExitUsage},
		{"page size", docmerge.ErrInvalidPageSize, ExitUsage},
		{"timeout", docmerge.ErrInvalidTimeout, ExitUsage},
		{"style", docmerge.ErrStyleNotFound, ExitUsage},
		{"asset path", docmerge.ErrInvalidAssetPath, ExitUsage},
		{"empty markdown", docmerge.ErrEmptyMarkdown, ExitUsage},

		// General (exit 1)
		{"cancelled", context.Canceled, ExitGeneral},
		{"unknown", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_Distinct(t *testing.T) {
	t.Parallel()

	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitBrowser, ExitNoContent}
	seen := make(map[int]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("exit code %d used twice", c)
		}
		if c >= 126 {
			t.Errorf("exit code %d collides with shell-reserved range", c)
		}
		seen[c] = true
	}
}
