// Copyright ©️ Slate SCM contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/slatescm/diffmerge/modules/term"
	"github.com/slatescm/diffmerge/modules/textdiff"
	"github.com/slatescm/diffmerge/modules/textdiff/color"
)

type Diff struct {
	IgnoreSpaceChange bool   `name:"ignore-space-change" short:"b" help:"Ignore changes in the amount of white space"`
	IgnoreAllSpace    bool   `name:"ignore-all-space" short:"w" help:"Ignore all white space"`
	IgnoreEolStyle    bool   `name:"ignore-eol-style" help:"Ignore changes in EOL style"`
	Unified           bool   `name:"unified" short:"u" help:"Output in unified format (the only format, accepted for compatibility)"`
	Context           int    `name:"context" short:"U" default:"-1" help:"Number of lines of context shown around changes"`
	Color             string `name:"color" enum:"auto,always,never" default:"auto" help:"Colorize the output: auto, always or never"`
	Original          string `arg:"" name:"original" help:"Original file"`
	Modified          string `arg:"" name:"modified" help:"Modified file"`
}

func (c *Diff) colorConfig() color.ColorConfig {
	switch c.Color {
	case "always":
		return color.NewColorConfig()
	case "auto":
		if term.StdoutMode != term.NoColor {
			return color.NewColorConfig()
		}
	}
	return nil
}

func (c *Diff) Run(g *Globals) error {
	cfg := loadConfig()
	if c.Color == "auto" && cfg.Color != "" {
		c.Color = cfg.Color
	}
	opts := textdiff.NewFileOptions()
	if c.IgnoreSpaceChange {
		opts.IgnoreSpace = textdiff.IgnoreSpaceChange
	}
	if c.IgnoreAllSpace {
		opts.IgnoreSpace = textdiff.IgnoreSpaceAll
	}
	opts.IgnoreEOLStyle = c.IgnoreEolStyle
	switch {
	case c.Context >= 0:
		opts.Context = c.Context
	case cfg.Context > 0:
		opts.Context = cfg.Context
	}

	now := time.Now()
	ctx := context.Background()
	diff, err := textdiff.FileDiff(ctx, c.Original, c.Modified, opts)
	if err != nil {
		return fmt.Errorf("diff %s %s: %w", c.Original, c.Modified, err)
	}
	g.DbgPrint("diff computed in %v", time.Since(now))

	uo := &textdiff.UnifiedOptions{
		Context: opts.Context,
		Color:   c.colorConfig(),
	}
	if err := textdiff.FileOutputUnified(ctx, os.Stdout, diff, c.Original, c.Modified, uo); err != nil {
		return fmt.Errorf("write diff: %w", err)
	}
	if textdiff.ContainsDiffs(diff) {
		return &ErrExitCode{ExitCode: ExitDiffs}
	}
	return nil
}
