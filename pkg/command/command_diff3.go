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

type Diff3 struct {
	ConflictStyle string   `name:"conflict-style" help:"Conflict style: modified-latest, resolved-modified-latest, modified-original-latest, modified, latest or only-conflicts"`
	Labels        []string `name:"label" short:"L" help:"Marker label; repeat for modified, original and latest in order"`
	ShowOverlap   bool     `name:"show-overlap" short:"E" hidden:"" help:"Accepted and ignored"`
	Merge         bool     `name:"merge" short:"m" hidden:"" help:"Accepted and ignored"`
	Mine          string   `arg:"" name:"mine" help:"My version of the file"`
	Older         string   `arg:"" name:"older" help:"Common older version"`
	Yours         string   `arg:"" name:"yours" help:"Incoming version of the file"`
}

// markerLabels turns up to three -L values into full marker lines in the
// order established by external merge drivers: modified, original, latest.
func markerLabels(labels []string, opts *textdiff.MergeOptions) error {
	if len(labels) > 3 {
		return fmt.Errorf("too many labels")
	}
	if len(labels) > 0 {
		opts.ConflictModified = "<<<<<<< " + labels[0]
	}
	if len(labels) > 1 {
		opts.ConflictOriginal = "||||||| " + labels[1]
	}
	if len(labels) > 2 {
		opts.ConflictLatest = ">>>>>>> " + labels[2]
	}
	return nil
}

func (c *Diff3) Run(g *Globals) error {
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
	// The merge is expressed against the older file: older is the
	// original, mine the modified side and yours the latest.
	diff, err := textdiff.FileDiff3(ctx, c.Older, c.Mine, c.Yours, textdiff.NewFileOptions())
	if err != nil {
		return fmt.Errorf("diff3 %s %s %s: %w", c.Mine, c.Older, c.Yours, err)
	}
	g.DbgPrint("diff3 computed in %v, conflicts: %v",
		time.Since(now), textdiff.ContainsConflicts(diff))

	if err := textdiff.FileOutputMerge(ctx, os.Stdout, diff, c.Older, c.Mine, c.Yours, opts); err != nil {
		return fmt.Errorf("write merge: %w", err)
	}
	if textdiff.ContainsDiffs(diff) {
		return &ErrExitCode{ExitCode: ExitDiffs}
	}
	return nil
}
