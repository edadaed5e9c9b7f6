package main

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-docmerge/internal/config"
)

// runBuild merges the portal and exports the result.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	c, err := parseBuildFlags(args, env)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := loadSettings(env, c.common.config, func(cfg *config.Config) {
		applyMergeFlags(c.fs, &c.merge, cfg)
		applyExportFlags(c.fs, &c.export, cfg)
	})
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, c.common)
	md, err := mergeToFile(ctx, cfg, c.merge.noProvenance, env, logger, c.common.quiet)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return exportFile(ctx, cfg, md, pdfPathFor(md, c.export.output), env, logger, c.common.quiet)
}
