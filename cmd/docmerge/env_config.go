package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-docmerge/internal/config"
)

const envPrefix = "DOCMERGE_"

// envConfig holds configuration from environment variables. Values override
// the config file and are overridden by flags.
type envConfig struct {
	ConfigPath string // DOCMERGE_CONFIG
	DocsDir    string // DOCMERGE_DOCS_DIR
	Descriptor string // DOCMERGE_DESCRIPTOR
	Output     string // DOCMERGE_OUTPUT
	Title      string // DOCMERGE_TITLE
	Date       string // DOCMERGE_DATE
	Style      string // DOCMERGE_STYLE
	Timeout    string // DOCMERGE_TIMEOUT, Go duration
	PageSize   string // DOCMERGE_PAGE_SIZE
}

// knownEnvVars lists valid DOCMERGE_* variables. Used to flag typos.
var knownEnvVars = map[string]bool{
	"DOCMERGE_CONFIG":     true,
	"DOCMERGE_DOCS_DIR":   true,
	"DOCMERGE_DESCRIPTOR": true,
	"DOCMERGE_OUTPUT":     true,
	"DOCMERGE_TITLE":      true,
	"DOCMERGE_DATE":       true,
	"DOCMERGE_STYLE":      true,
	"DOCMERGE_TIMEOUT":    true,
	"DOCMERGE_PAGE_SIZE":  true,
	"DOCMERGE_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads the recognized DOCMERGE_* variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath: getenv("DOCMERGE_CONFIG"),
		DocsDir:    getenv("DOCMERGE_DOCS_DIR"),
		Descriptor: getenv("DOCMERGE_DESCRIPTOR"),
		Output:     getenv("DOCMERGE_OUTPUT"),
		Title:      getenv("DOCMERGE_TITLE"),
		Date:       getenv("DOCMERGE_DATE"),
		Style:      getenv("DOCMERGE_STYLE"),
		Timeout:    getenv("DOCMERGE_TIMEOUT"),
		PageSize:   getenv("DOCMERGE_PAGE_SIZE"),
	}
}

// warnUnknownEnvVars reports unrecognized DOCMERGE_* variables, e.g.
// DOCMERGE_DOCSDIR instead of DOCMERGE_DOCS_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig copies every set variable into cfg.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Input.DocsDir, env.DocsDir)
	set(&cfg.Input.Descriptor, env.Descriptor)
	set(&cfg.Output.Path, env.Output)
	set(&cfg.Document.Title, env.Title)
	set(&cfg.Document.Date, env.Date)
	set(&cfg.Export.Style, env.Style)
	set(&cfg.Export.Timeout, env.Timeout)
	set(&cfg.Export.PageSize, env.PageSize)
}
