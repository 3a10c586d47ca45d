// Copyright ©️ Slate SCM contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package command implements the reference diff and merge tools.
package command

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/slatescm/diffmerge/modules/trace"
	"github.com/slatescm/diffmerge/pkg/config"
)

// Tool exit codes: no differences, differences present, error.
const (
	ExitNoDiffs = 0
	ExitDiffs   = 1
	ExitError   = 2
)

// ErrExitCode carries a tool exit code through the command runner.
type ErrExitCode struct {
	ExitCode int
}

func (e *ErrExitCode) Error() string {
	return fmt.Sprintf("exit code: %d", e.ExitCode)
}

type Globals struct {
	Verbose bool `name:"verbose" short:"v" help:"Make the operation more talkative"`
}

func (g *Globals) DbgPrint(format string, args ...any) {
	if g.Verbose {
		trace.DbgPrint(format, args...)
	}
}

// loadConfig reads the defaults file; a broken file is only worth a
// warning, the tools keep going with built-in defaults.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logrus.Warnf("load config: %v", err)
		return &config.Config{}
	}
	return cfg
}
