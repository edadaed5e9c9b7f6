package config

// Notes:
// - Name lookup tests are not parallel: they use t.Chdir and t.Setenv to
//   control the working directory and XDG_CONFIG_HOME.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

// ---------------------------------------------------------------------------
// TestDefaultConfig - Defaults
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Input.DocsDir != DefaultDocsDir {
		t.Errorf("Input.DocsDir = %q, want %q", cfg.Input.DocsDir, DefaultDocsDir)
	}
	if cfg.Input.Descriptor != DefaultDescriptor {
		t.Errorf("Input.Descriptor = %q, want %q", cfg.Input.Descriptor, DefaultDescriptor)
	}
	if cfg.Output.Path != DefaultOutput {
		t.Errorf("Output.Path = %q, want %q", cfg.Output.Path, DefaultOutput)
	}
	if cfg.TOC.Enabled {
		t.Error("TOC.Enabled = true, want false")
	}
	if cfg.TOCDepth() != DefaultTOCDepth {
		t.Errorf("TOCDepth() = %d, want %d", cfg.TOCDepth(), DefaultTOCDepth)
	}
	if cfg.ExportTimeout() != DefaultTimeout {
		t.Errorf("ExportTimeout() = %v, want %v", cfg.ExportTimeout(), DefaultTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestTOCDepth_ZeroMeansDefault(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	if cfg.TOCDepth() != DefaultTOCDepth {
		t.Errorf("TOCDepth() = %d, want %d", cfg.TOCDepth(), DefaultTOCDepth)
	}
	cfg.TOC.MaxDepth = 2
	if cfg.TOCDepth() != 2 {
		t.Errorf("TOCDepth() = %d, want 2", cfg.TOCDepth())
	}
}

// ---------------------------------------------------------------------------
// TestValidate - Value checks
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"depth 6", func(c *Config) { c.TOC.MaxDepth = 6 }, nil},
		{"depth beyond heading levels", func(c *Config) { c.TOC.MaxDepth = 9 }, nil},
		{"negative depth", func(c *Config) { c.TOC.MaxDepth = -1 }, ErrInvalidValue},
		{"valid timeout", func(c *Config) { c.Export.Timeout = "45s" }, nil},
		{"bad timeout", func(c *Config) { c.Export.Timeout = "soon" }, ErrInvalidValue},
		{"zero timeout", func(c *Config) { c.Export.Timeout = "0s" }, ErrInvalidValue},
		{"page size case-insensitive", func(c *Config) { c.Export.PageSize = "Letter" }, nil},
		{"unknown page size", func(c *Config) { c.Export.PageSize = "a3" }, ErrInvalidValue},
		{"bad external regex", func(c *Config) { c.Filter.ExternalPatterns = []string{"(unclosed"} }, ErrInvalidValue},
		{"title too long", func(c *Config) { c.Document.Title = strings.Repeat("x", MaxTitleLength+1) }, ErrFieldTooLong},
		{"too many excludes", func(c *Config) { c.Input.Exclude = make([]string, MaxPatterns+1) }, ErrFieldTooLong},
		{"orphan header too long", func(c *Config) {
			c.Groom.OrphanHeaders = []string{strings.Repeat("x", MaxPatternLength+1)}
		}, ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExportTimeout(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Export.Timeout = "2m"
	if got := cfg.ExportTimeout(); got != 2*time.Minute {
		t.Errorf("ExportTimeout() = %v, want 2m", got)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading
// ---------------------------------------------------------------------------

func TestLoadConfig_File(t *testing.T) {
	t.Parallel()

	p := writeConfig(t, t.TempDir(), "docmerge.yaml", `
input:
  docsDir: content
  exclude:
    - drafts/**
document:
  title: Fleet API
  date: auto
toc:
  enabled: true
  maxDepth: 2
filter:
  externalPatterns:
    - status\.example\.com
export:
  style: plain
  timeout: 1m
`)

	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Input.DocsDir != "content" {
		t.Errorf("Input.DocsDir = %q, want content", cfg.Input.DocsDir)
	}
	if cfg.Input.Descriptor != DefaultDescriptor {
		t.Errorf("Input.Descriptor = %q, want default kept", cfg.Input.Descriptor)
	}
	if len(cfg.Input.Exclude) != 1 || cfg.Input.Exclude[0] != "drafts/**" {
		t.Errorf("Input.Exclude = %v", cfg.Input.Exclude)
	}
	if cfg.Document.Title != "Fleet API" {
		t.Errorf("Document.Title = %q", cfg.Document.Title)
	}
	if !cfg.TOC.Enabled || cfg.TOCDepth() != 2 {
		t.Errorf("TOC = %+v", cfg.TOC)
	}
	if cfg.Output.Path != DefaultOutput {
		t.Errorf("Output.Path = %q, want default kept", cfg.Output.Path)
	}
	if cfg.Export.PageSize != DefaultPageSize {
		t.Errorf("Export.PageSize = %q, want default kept", cfg.Export.PageSize)
	}
	if cfg.ExportTimeout() != time.Minute {
		t.Errorf("ExportTimeout() = %v, want 1m", cfg.ExportTimeout())
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	unknown := writeConfig(t, dir, "unknown.yaml", "input:\n  docs: content\n")
	malformed := writeConfig(t, dir, "malformed.yaml", "input: [unclosed\n")
	invalid := writeConfig(t, dir, "invalid.yaml", "toc:\n  maxDepth: -2\n")

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"empty name", "", ErrEmptyConfigName},
		{"missing file", filepath.Join(dir, "missing.yaml"), ErrConfigNotFound},
		{"unknown key", unknown, ErrConfigParse},
		{"malformed yaml", malformed, ErrConfigParse},
		{"invalid value", invalid, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfig(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig(%q) error = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig_Name - Name resolution
// ---------------------------------------------------------------------------

func TestLoadConfig_NameInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "team.yml", "document:\n  title: Local\n")
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	cfg, err := LoadConfig("team")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Document.Title != "Local" {
		t.Errorf("Document.Title = %q, want Local", cfg.Document.Title)
	}
}

func TestLoadConfig_NameInUserConfigDir(t *testing.T) {
	dir := t.TempDir()
	xdg := filepath.Join(dir, "xdg")
	t.Setenv("XDG_CONFIG_HOME", xdg)
	if got, err := os.UserConfigDir(); err != nil || got != xdg {
		t.Skip("user config dir does not follow XDG_CONFIG_HOME on this platform")
	}
	writeConfig(t, xdg, filepath.Join(AppName, "team.yaml"), "document:\n  title: User\n")
	t.Chdir(dir)

	cfg, err := LoadConfig("team")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Document.Title != "User" {
		t.Errorf("Document.Title = %q, want User", cfg.Document.Title)
	}
}

func TestLoadConfig_NameNotFound(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	_, err := LoadConfig("absent")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "absent.yaml") {
		t.Errorf("error %q should list tried paths", err)
	}
}
