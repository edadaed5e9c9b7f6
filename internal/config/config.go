// Package config loads docmerge configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/alnah/go-docmerge/internal/fileutil"
	"github.com/alnah/go-docmerge/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppName names the per-user configuration directory.
const AppName = "docmerge"

// Field length limits.
const (
	MaxPathLength       = 4096
	MaxTitleLength      = 200
	MaxProvenanceLength = 500
	MaxDateLength       = 30 // "auto:MMMM D, YYYY"
	MaxTOCTitleLength   = 100
	MaxPatternLength    = 500
	MaxPatterns         = 100
	MaxPageSizeLength   = 10 // "letter", "a4", "legal"
	MaxTimeoutLength    = 20
)

// Defaults.
const (
	DefaultDocsDir    = "docs"
	DefaultDescriptor = "toc.json"
	DefaultOutput     = "API_documentation_full.md"
	DefaultTOCDepth   = 3
	DefaultTimeout    = 30 * time.Second
	DefaultPageSize   = "a4"
)

// Config holds all configuration for a merge and export run.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Document DocumentConfig `yaml:"document"`
	TOC      TOCConfig      `yaml:"toc"`
	Filter   FilterConfig   `yaml:"filter"`
	Groom    GroomConfig    `yaml:"groom"`
	Export   ExportConfig   `yaml:"export"`
}

// InputConfig locates the content tree and navigation descriptor.
type InputConfig struct {
	DocsDir    string   `yaml:"docsDir"`
	Descriptor string   `yaml:"descriptor"` // .json, .yaml or .yml
	Include    string   `yaml:"include"`    // doublestar glob, default "**/*.md"
	Exclude    []string `yaml:"exclude"`    // doublestar globs
}

// OutputConfig defines the merged document destination.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// DocumentConfig defines the document preamble.
type DocumentConfig struct {
	Title      string `yaml:"title"`
	Provenance string `yaml:"provenance"`
	Date       string `yaml:"date"` // "auto", "auto:FORMAT" or a literal date
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title"`
	MaxDepth int    `yaml:"maxDepth"` // >= 1, 0 means default 3
}

// FilterConfig extends the external-entry patterns.
type FilterConfig struct {
	ExternalPatterns []string `yaml:"externalPatterns"`
}

// GroomConfig overrides the boilerplate removed from pages.
type GroomConfig struct {
	OrphanHeaders []string `yaml:"orphanHeaders"`
	Placeholder   string   `yaml:"placeholder"`
}

// ExportConfig defines HTML and PDF rendering options.
type ExportConfig struct {
	Style     string `yaml:"style"`     // style name, CSS file path, or empty for default
	AssetPath string `yaml:"assetPath"` // custom asset directory
	Timeout   string `yaml:"timeout"`   // Go duration, e.g. "45s"
	PageSize  string `yaml:"pageSize"`  // "letter", "a4", "legal"
}

// ValidPageSizes lists the accepted export.pageSize values.
var ValidPageSizes = []string{"letter", "a4", "legal"}

// Validate checks field lengths and value ranges. Called by LoadConfig and
// available for configs built in code.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"input.docsDir", c.Input.DocsDir, MaxPathLength},
		{"input.descriptor", c.Input.Descriptor, MaxPathLength},
		{"input.include", c.Input.Include, MaxPatternLength},
		{"output.path", c.Output.Path, MaxPathLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.provenance", c.Document.Provenance, MaxProvenanceLength},
		{"document.date", c.Document.Date, MaxDateLength},
		{"toc.title", c.TOC.Title, MaxTOCTitleLength},
		{"groom.placeholder", c.Groom.Placeholder, MaxTitleLength},
		{"export.style", c.Export.Style, MaxPathLength},
		{"export.assetPath", c.Export.AssetPath, MaxPathLength},
		{"export.timeout", c.Export.Timeout, MaxTimeoutLength},
		{"export.pageSize", c.Export.PageSize, MaxPageSizeLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if err := validatePatterns("input.exclude", c.Input.Exclude); err != nil {
		return err
	}
	if err := validatePatterns("filter.externalPatterns", c.Filter.ExternalPatterns); err != nil {
		return err
	}
	for i, p := range c.Filter.ExternalPatterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("%w: filter.externalPatterns[%d]: %v", ErrInvalidValue, i, err)
		}
	}
	if err := validatePatterns("groom.orphanHeaders", c.Groom.OrphanHeaders); err != nil {
		return err
	}

	if c.TOC.MaxDepth < 0 {
		return fmt.Errorf("%w: toc.maxDepth: must be at least 1, got %d", ErrInvalidValue, c.TOC.MaxDepth)
	}

	if c.Export.Timeout != "" {
		d, err := time.ParseDuration(c.Export.Timeout)
		if err != nil {
			return fmt.Errorf("%w: export.timeout: %v", ErrInvalidValue, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: export.timeout: must be positive, got %s", ErrInvalidValue, c.Export.Timeout)
		}
	}

	if c.Export.PageSize != "" && !isValidPageSize(c.Export.PageSize) {
		return fmt.Errorf("%w: export.pageSize: %q (must be %s)",
			ErrInvalidValue, c.Export.PageSize, strings.Join(ValidPageSizes, ", "))
	}

	return nil
}

// TOCDepth returns toc.maxDepth or the default.
func (c *Config) TOCDepth() int {
	if c.TOC.MaxDepth == 0 {
		return DefaultTOCDepth
	}
	return c.TOC.MaxDepth
}

// ExportTimeout returns export.timeout or the default. Call Validate first.
func (c *Config) ExportTimeout() time.Duration {
	d, err := time.ParseDuration(c.Export.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validatePatterns(fieldName string, values []string) error {
	if len(values) > MaxPatterns {
		return fmt.Errorf("%w: %s (%d entries, max %d)", ErrFieldTooLong, fieldName, len(values), MaxPatterns)
	}
	for i, v := range values {
		if err := validateFieldLength(fmt.Sprintf("%s[%d]", fieldName, i), v, MaxPatternLength); err != nil {
			return err
		}
	}
	return nil
}

func isValidPageSize(s string) bool {
	for _, v := range ValidPageSizes {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{DocsDir: DefaultDocsDir, Descriptor: DefaultDescriptor},
		Output: OutputConfig{Path: DefaultOutput},
		TOC:    TOCConfig{Enabled: false, MaxDepth: DefaultTOCDepth},
		Export: ExportConfig{PageSize: DefaultPageSize},
	}
}

// LoadConfig loads configuration from a file path or config name. A value
// containing a path separator is a file path; otherwise it is a name
// searched in the current directory, then the user config directory.
// Missing values are filled from DefaultConfig.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches name.yaml then name.yml in the current
// directory, then in the user config directory under AppName.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
