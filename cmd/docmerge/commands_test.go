package main

// Notes:
// - Commands run through runMain against temp-dir portals. Export uses
//   fakeExporter; Chrome is never started.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	docmerge "github.com/alnah/go-docmerge"
)

// ---------------------------------------------------------------------------
// TestRunMain - Dispatch
// ---------------------------------------------------------------------------

func TestRunMain_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "version", args: []string{"version"}, wantCode: ExitSuccess, wantStdout: "docmerge dev"},
		{name: "help", args: []string{"help"}, wantCode: ExitSuccess, wantStdout: "Commands:"},
		{name: "help merge", args: []string{"help", "merge"}, wantCode: ExitSuccess, wantStdout: "--descriptor"},
		{name: "help unknown", args: []string{"help", "nope"}, wantCode: ExitUsage, wantStderr: "Unknown command"},
		{name: "unknown command", args: []string{"convert"}, wantCode: ExitUsage, wantStderr: `unknown command "convert"`},
		{name: "bad flag", args: []string{"merge", "--bogus"}, wantCode: ExitUsage, wantStderr: "invalid usage"},
		{name: "merge help", args: []string{"merge", "--help"}, wantCode: ExitSuccess, wantStderr: "Usage: docmerge merge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, nil)
			code := runMain(context.Background(), tt.args, env.Environment)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr %q)", code, tt.wantCode, env.stderr.String())
			}
			if !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout %q missing %q", env.stdout.String(), tt.wantStdout)
			}
			if !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr %q missing %q", env.stderr.String(), tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMergeCommand
// ---------------------------------------------------------------------------

func TestMergeCommand(t *testing.T) {
	t.Parallel()

	dir := writePortal(t)
	env := newTestEnv(t, nil)

	args := append([]string{"merge", "--toc", "--title", "Fleet API", "--date", "auto"}, portalArgs(dir)...)
	if code := runMain(context.Background(), args, env.Environment); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, env.stderr.String())
	}

	out := filepath.Join(dir, "full.md")
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("merged file not written: %v", err)
	}
	md := string(data)
	for _, want := range []string{
		"# Fleet API\n",
		" on 2026-03-09*",
		"- [Overview](#overview)",
		"\n# Overview\n\nWelcome to the API.",
		"\n## Groups\n\nGroups collect devices.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("merged Markdown missing %q", want)
		}
	}

	if !strings.Contains(env.stdout.String(), "Created "+out) {
		t.Errorf("stdout = %q", env.stdout.String())
	}
	if !strings.Contains(env.stdout.String(), "2 of 2 entries matched") {
		t.Errorf("summary missing: %q", env.stdout.String())
	}
}

func TestMergeCommand_DefaultWithLeadingFlag(t *testing.T) {
	t.Parallel()

	dir := writePortal(t)
	env := newTestEnv(t, nil)

	args := append([]string{"-q"}, portalArgs(dir)...)
	if code := runMain(context.Background(), args, env.Environment); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, env.stderr.String())
	}
	if env.stdout.Len() != 0 {
		t.Errorf("quiet run printed %q", env.stdout.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "full.md")); err != nil {
		t.Errorf("merged file not written: %v", err)
	}
}

func TestMergeCommand_NoProvenance(t *testing.T) {
	t.Parallel()

	dir := writePortal(t)
	env := newTestEnv(t, nil)

	args := append([]string{"merge", "--no-provenance"}, portalArgs(dir)...)
	if code := runMain(context.Background(), args, env.Environment); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, env.stderr.String())
	}
	data, err := os.ReadFile(filepath.Join(dir, "full.md"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "*Generated from") {
		t.Error("provenance notice present")
	}
}

func TestMergeCommand_Errors(t *testing.T) {
	t.Parallel()

	dir := writePortal(t)
	noMatch := filepath.Join(dir, "nomatch.json")
	if err := os.WriteFile(noMatch, []byte(`{"items":[{"type":"item","title":"Ghost","uri":"/docs/ghost"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{
			name:       "missing docs dir",
			args:       []string{"--docs", filepath.Join(dir, "absent"), "--descriptor", filepath.Join(dir, "toc.json")},
			wantCode:   ExitIO,
			wantStderr: "pass --docs",
		},
		{
			name:       "missing descriptor",
			args:       []string{"--docs", filepath.Join(dir, "docs"), "--descriptor", filepath.Join(dir, "absent.json")},
			wantCode:   ExitIO,
			wantStderr: "pass --descriptor",
		},
		{
			name:       "no matches",
			args:       []string{"--docs", filepath.Join(dir, "docs"), "--descriptor", noMatch},
			wantCode:   ExitNoContent,
			wantStderr: "--verbose",
		},
		{
			name:       "toc depth out of range",
			args:       append([]string{"--toc-depth=-2"}, portalArgs(dir)...),
			wantCode:   ExitUsage,
			wantStderr: "--toc-depth",
		},
		{
			name:       "unwritable output",
			args:       []string{"--docs", filepath.Join(dir, "docs"), "--descriptor", filepath.Join(dir, "toc.json"), "-o", filepath.Join(dir, "absent", "full.md")},
			wantCode:   ExitIO,
			wantStderr: "parent directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, nil)
			code := runMain(context.Background(), append([]string{"merge"}, tt.args...), env.Environment)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr %q)", code, tt.wantCode, env.stderr.String())
			}
			if !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr %q missing %q", env.stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestMergeCommand_Cancelled(t *testing.T) {
	t.Parallel()

	dir := writePortal(t)
	env := newTestEnv(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if code := runMain(ctx, append([]string{"merge"}, portalArgs(dir)...), env.Environment); code != ExitGeneral {
		t.Errorf("exit code = %d, want %d", code, ExitGeneral)
	}
	if _, err := os.Stat(filepath.Join(dir, "full.md")); !os.IsNotExist(err) {
		t.Errorf("output written after cancellation: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestExportCommand
// ---------------------------------------------------------------------------

func writeMarkdown(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "full.md")
	if err := os.WriteFile(p, []byte("# Fleet API\n\nBody.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestExportCommand(t *testing.T) {
	t.Parallel()

	input := writeMarkdown(t)
	env := newTestEnv(t, nil)

	if code := runMain(context.Background(), []string{"export", input}, env.Environment); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, env.stderr.String())
	}

	want := strings.TrimSuffix(input, ".md") + ".pdf"
	got := env.exporter.got
	if got.OutputPath != want || got.SourceDir != filepath.Dir(input) {
		t.Errorf("Export input = %+v, want output %q", got, want)
	}
	if !strings.Contains(got.Markdown, "# Fleet API") {
		t.Errorf("markdown not passed: %q", got.Markdown)
	}
	if !env.exporter.closed {
		t.Error("exporter not closed")
	}
	if !strings.Contains(env.stdout.String(), "Created "+want+" (1 pages)") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestExportCommand_DefaultInputFromEnv(t *testing.T) {
	t.Parallel()

	input := writeMarkdown(t)
	env := newTestEnv(t, map[string]string{"DOCMERGE_OUTPUT": input})

	if code := runMain(context.Background(), []string{"export", "-o", input + ".out.pdf"}, env.Environment); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, env.stderr.String())
	}
	if env.exporter.got.OutputPath != input+".out.pdf" {
		t.Errorf("OutputPath = %q", env.exporter.got.OutputPath)
	}
}

func TestExportCommand_Fallback(t *testing.T) {
	t.Parallel()

	input := writeMarkdown(t)
	env := newTestEnv(t, nil)
	env.exporter.result = &docmerge.ExportResult{
		HTMLPath: "full.html",
		Fallback: true,
		Err:      docmerge.ErrBrowserConnect,
	}

	code := runMain(context.Background(), []string{"export", input}, env.Environment)
	if code != ExitBrowser {
		t.Errorf("exit code = %d, want %d", code, ExitBrowser)
	}
	if !strings.Contains(env.stdout.String(), "Created full.html") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
	if !strings.Contains(env.stderr.String(), "docmerge merge") {
		t.Errorf("stderr lacks browser hint: %q", env.stderr.String())
	}
}

func TestExportCommand_Errors(t *testing.T) {
	t.Parallel()

	input := writeMarkdown(t)

	tests := []struct {
		name     string
		args     []string
		newErr   error
		err      error
		wantCode int
	}{
		{name: "missing input", args: []string{"export", input + ".absent"}, wantCode: ExitIO},
		{name: "style not found", args: []string{"export", input}, newErr: docmerge.ErrStyleNotFound, wantCode: ExitUsage},
		{name: "html write", args: []string{"export", input}, err: docmerge.ErrHTMLWrite, wantCode: ExitIO},
		{name: "bad page size", args: []string{"export", input, "-p", "a3"}, wantCode: ExitUsage},
		{name: "bad timeout", args: []string{"export", input, "--timeout=-1s"}, wantCode: ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, nil)
			env.exporter.newErr = tt.newErr
			env.exporter.err = tt.err
			if code := runMain(context.Background(), tt.args, env.Environment); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr %q)", code, tt.wantCode, env.stderr.String())
			}
		})
	}
}

func TestExportCommand_StyleHint(t *testing.T) {
	t.Parallel()

	input := writeMarkdown(t)
	env := newTestEnv(t, nil)
	env.NewExporter = func(opts ...docmerge.ExportOption) (PDFExporter, error) {
		return docmerge.NewExporter(opts...)
	}

	code := runMain(context.Background(), []string{"export", input, "--style", "gothic"}, env.Environment)
	if code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(env.stderr.String(), "available:") {
		t.Errorf("stderr lacks style list: %q", env.stderr.String())
	}
}

func TestPDFPathFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input, explicit, want string
	}{
		{"full.md", "", "full.pdf"},
		{"notes", "", "notes.pdf"},
		{"book.pdf", "", "book.pdf.pdf"},
		{"full.md", "out/x.pdf", "out/x.pdf"},
	}
	for _, tt := range tests {
		if got := pdfPathFor(tt.input, tt.explicit); got != tt.want {
			t.Errorf("pdfPathFor(%q, %q) = %q, want %q", tt.input, tt.explicit, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestBuildCommand
// ---------------------------------------------------------------------------

func TestBuildCommand(t *testing.T) {
	t.Parallel()

	dir := writePortal(t)
	env := newTestEnv(t, nil)
	pdf := filepath.Join(dir, "book.pdf")

	args := append([]string{"build", "--pdf", pdf, "--page-size", "letter"}, portalArgs(dir)...)
	if code := runMain(context.Background(), args, env.Environment); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, env.stderr.String())
	}

	if _, err := os.Stat(filepath.Join(dir, "full.md")); err != nil {
		t.Errorf("merged file missing: %v", err)
	}
	if _, err := os.Stat(pdf); err != nil {
		t.Errorf("PDF missing: %v", err)
	}
	if !strings.Contains(env.exporter.got.Markdown, "Welcome to the API.") {
		t.Error("export did not receive the merged document")
	}
}

func TestBuildCommand_MergeFailureSkipsExport(t *testing.T) {
	t.Parallel()

	dir := writePortal(t)
	env := newTestEnv(t, nil)
	env.exporter.err = errors.New("must not be called")

	code := runMain(context.Background(), []string{"build", "--docs", filepath.Join(dir, "absent")}, env.Environment)
	if code != ExitIO {
		t.Errorf("exit code = %d, want %d", code, ExitIO)
	}
	if env.exporter.got.OutputPath != "" {
		t.Error("export ran after a failed merge")
	}
}
