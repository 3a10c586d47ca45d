// Copyright ©️ Slate SCM contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
	"github.com/slatescm/diffmerge/pkg/command"
	"github.com/slatescm/diffmerge/pkg/version"
)

type App struct {
	command.Globals
	command.Diff3
	Version kong.VersionFlag `name:"version" help:"Display version information"`
}

func main() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	var app App
	kong.Parse(&app,
		kong.Name("sdiff3"),
		kong.Description("Merge two derived files against their common older version"),
		kong.UsageOnError(),
		kong.Vars{"version": version.GetVersionString()},
	)
	if app.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	err := app.Diff3.Run(&app.Globals)
	if err == nil {
		os.Exit(command.ExitNoDiffs)
	}
	var ec *command.ErrExitCode
	if errors.As(err, &ec) {
		os.Exit(ec.ExitCode)
	}
	logrus.Errorf("sdiff3: %v", err)
	os.Exit(command.ExitError)
}
