// Copyright ©️ Slate SCM contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/slatescm/diffmerge/modules/textdiff"
)

type Diff4 struct {
	ConflictStyle string   `name:"conflict-style" help:"Conflict style, see sdiff3"`
	Labels        []string `name:"label" short:"L" help:"Marker label; repeat for modified, original and latest in order"`
	Mine          string   `arg:"" name:"mine" help:"My version of the file"`
	Older         string   `arg:"" name:"older" help:"Common older version"`
	Yours         string   `arg:"" name:"yours" help:"Incoming version of the file"`
	Ancestor      string   `arg:"" name:"ancestor" help:"Ancestor my version is based on"`
}

func (c *Diff4) Run(g *Globals) error {
	cfg := loadConfig()
	styleName := c.ConflictStyle
	if styleName == "" {
		styleName = cfg.ConflictStyle
	}
	opts := &textdiff.MergeOptions{}
	if styleName != "" {
		var err error
		if opts.Style, err = textdiff.ParseMergeStyle(styleName); err != nil {
			return err
		}
	}
	if err := markerLabels(c.Labels, opts); err != nil {
		return err
	}

	now := time.Now()
	ctx := context.Background()
	diff, err := textdiff.FileDiff4(ctx, c.Older, c.Mine, c.Yours, c.Ancestor, textdiff.NewFileOptions())
	if err != nil {
		return fmt.Errorf("diff4 %s %s %s %s: %w", c.Mine, c.Older, c.Yours, c.Ancestor, err)
	}
	g.DbgPrint("diff4 computed in %v", time.Since(now))

	if err := textdiff.FileOutputMerge(ctx, os.Stdout, diff, c.Older, c.Mine, c.Yours, opts); err != nil {
		return fmt.Errorf("write merge: %w", err)
	}
	if textdiff.ContainsDiffs(diff) {
		return &ErrExitCode{ExitCode: ExitDiffs}
	}
	return nil
}
