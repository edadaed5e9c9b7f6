package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	docmerge "github.com/alnah/go-docmerge"
)

// testEnv wraps an Environment with captured output and a fixed
// environment map.
type testEnv struct {
	*Environment
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	exporter *fakeExporter
}

func newTestEnv(t *testing.T, vars map[string]string) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		exporter: &fakeExporter{},
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC) },
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		NewExporter: func(opts ...docmerge.ExportOption) (PDFExporter, error) {
			te.exporter.opts = len(opts)
			return te.exporter, te.exporter.newErr
		},
	}
	return te
}

// fakeExporter writes a placeholder PDF, or returns the configured result.
type fakeExporter struct {
	newErr error
	err    error
	result *docmerge.ExportResult
	opts   int
	got    docmerge.ExportInput
	closed bool
}

func (f *fakeExporter) Export(_ context.Context, in docmerge.ExportInput) (*docmerge.ExportResult, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	if err := os.WriteFile(in.OutputPath, []byte("%PDF-1.4 fake"), 0o644); err != nil {
		return nil, err
	}
	return &docmerge.ExportResult{PDFPath: in.OutputPath, Pages: 1}, nil
}

func (f *fakeExporter) Close() error {
	f.closed = true
	return nil
}

// writePortal lays out docs/ and toc.json under a temp dir and returns the
// directory.
func writePortal(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"docs/overview.md":       "Welcome to the API.\n",
		"docs/devices/groups.md": "Groups collect devices.\n",
		"toc.json": `{"items": [
  {"type": "item", "title": "Overview", "uri": "/docs/overview.md"},
  {"type": "group", "title": "Devices", "items": [
    {"type": "item", "title": "Groups", "uri": "/docs/devices/groups.md"}
  ]}
]}`,
	}
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return dir
}

func portalArgs(dir string) []string {
	return []string{
		"--docs", filepath.Join(dir, "docs"),
		"--descriptor", filepath.Join(dir, "toc.json"),
		"-o", filepath.Join(dir, "full.md"),
	}
}
