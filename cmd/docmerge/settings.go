package main

import (
	"errors"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-docmerge/internal/config"
	"github.com/alnah/go-docmerge/internal/hints"
)

// loadSettings resolves configuration with precedence
// flags > DOCMERGE_* environment > config file > defaults.
// applyFlags runs last and must only copy flags the user set.
func loadSettings(env *Environment, configFlag string, applyFlags func(*config.Config)) (*config.Config, error) {
	warnUnknownEnvVars(env.Stderr, env.Environ())
	envCfg := loadEnvConfig(env.Getenv)

	name := configFlag
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, withHint(err, hints.ForConfigNotFound(triedPaths(err)))
			}
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	if applyFlags != nil {
		applyFlags(cfg)
	}

	// Env and flag values bypass LoadConfig's validation.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// triedPaths extracts the paths listed after "tried " in a
// config.ErrConfigNotFound message.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}

// applyMergeFlags copies the merge flags the user set into cfg.
func applyMergeFlags(fs *flag.FlagSet, f *mergeFlags, cfg *config.Config) {
	if fs.Changed("docs") {
		cfg.Input.DocsDir = f.docs
	}
	if fs.Changed("descriptor") {
		cfg.Input.Descriptor = f.descriptor
	}
	if fs.Changed("output") {
		cfg.Output.Path = f.output
	}
	if fs.Changed("title") {
		cfg.Document.Title = f.title
	}
	if fs.Changed("provenance") {
		cfg.Document.Provenance = f.provenance
	}
	if fs.Changed("date") {
		cfg.Document.Date = f.date
	}
	if fs.Changed("toc") {
		cfg.TOC.Enabled = f.toc
	}
	if fs.Changed("toc-depth") {
		cfg.TOC.MaxDepth = f.tocDepth
	}
	if fs.Changed("toc-title") {
		cfg.TOC.Title = f.tocTitle
	}
	if fs.Changed("exclude") {
		cfg.Input.Exclude = append(cfg.Input.Exclude, f.excludes...)
	}
}

// applyExportFlags copies the export flags the user set into cfg. The
// output path is not part of the configuration.
func applyExportFlags(fs *flag.FlagSet, f *exportFlags, cfg *config.Config) {
	if fs.Changed("timeout") {
		cfg.Export.Timeout = f.timeout
	}
	if fs.Changed("style") {
		cfg.Export.Style = f.style
	}
	if fs.Changed("asset-path") {
		cfg.Export.AssetPath = f.assetPath
	}
	if fs.Changed("page-size") {
		cfg.Export.PageSize = f.pageSize
	}
}
