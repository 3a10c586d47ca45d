// Copyright ©️ Slate SCM contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
)

var (
	version   = "0.4.0"
	buildTime = "none"
)

func GetVersion() string {
	return version
}

func GetBuildTime() string {
	return buildTime
}

func GetVersionString() string {
	return fmt.Sprintf("diffmerge %s (%s/%s, built %s)",
		version, runtime.GOOS, runtime.GOARCH, buildTime)
}
