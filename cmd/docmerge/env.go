package main

import (
	"context"
	"io"
	"os"
	"time"

	docmerge "github.com/alnah/go-docmerge"
)

// PDFExporter is the part of docmerge.Exporter the CLI uses.
type PDFExporter interface {
	Export(ctx context.Context, in docmerge.ExportInput) (*docmerge.ExportResult, error)
	Close() error
}

// Compile-time interface check.
var _ PDFExporter = (*docmerge.Exporter)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	Getenv      func(string) string
	Environ     func() []string
	NewExporter func(opts ...docmerge.ExportOption) (PDFExporter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewExporter: func(opts ...docmerge.ExportOption) (PDFExporter, error) {
			return docmerge.NewExporter(opts...)
		},
	}
}
